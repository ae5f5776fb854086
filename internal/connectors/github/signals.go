package github

import (
	"fmt"
	"math"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Signal thresholds.
const (
	minTopicRepos     = 2
	topicPoints       = 3
	velocityPoints    = 4
	highVelocity      = 10
	maxLanguages      = 3
	changeRunes       = 80
	recentUpdateDays  = 7
	recentCreatedDays = 30
)

type topic struct {
	name     string
	keywords []string
}

// topics are checked in this order for every repository.
var topics = []topic{
	{"AI Agents", []string{"agent", "ai", "llm", "gpt", "claude", "autonomous"}},
	{"DePIN", []string{"depin", "iot", "sensor", "physical", "infrastructure"}},
	{"DeFi", []string{"defi", "swap", "amm", "lending", "yield", "vault"}},
	{"NFT", []string{"nft", "compressed", "bubblegum", "metaplex"}},
	{"Token Extensions", []string{"token-2022", "token-extensions", "spl-token"}},
	{"Gaming", []string{"game", "gaming", "play-to-earn", "metaverse"}},
	{"Payments", []string{"payment", "pay", "checkout", "commerce"}},
	{"Security", []string{"security", "audit", "vulnerability", "scanner"}},
	{"Tooling", []string{"sdk", "cli", "tool", "framework", "library"}},
}

type topicGroup struct {
	name  string
	repos []*gh.Repository
}

func buildSignals(repos []*gh.Repository, now time.Time) []domain.Signal {
	var signals []domain.Signal
	for _, g := range groupByTopic(repos) {
		if len(g.repos) >= minTopicRepos {
			signals = append(signals, topicSignal(g, now))
		}
	}
	if sig, ok := velocitySignal(repos, now); ok {
		signals = append(signals, sig)
	}
	return signals
}

func repoText(r *gh.Repository) string {
	return strings.ToLower(r.GetFullName() + " " + r.GetDescription() + " " + strings.Join(r.Topics, " "))
}

// groupByTopic assigns each repository to every topic it mentions. Groups
// are ordered by the first repository that joined them.
func groupByTopic(repos []*gh.Repository) []topicGroup {
	var groups []topicGroup
	index := make(map[string]int)
	for _, r := range repos {
		text := repoText(r)
		for _, t := range topics {
			if !containsAny(text, t.keywords) {
				continue
			}
			i, ok := index[t.name]
			if !ok {
				i = len(groups)
				index[t.name] = i
				groups = append(groups, topicGroup{name: t.name})
			}
			groups[i].repos = append(groups[i].repos, r)
		}
	}
	return groups
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func topicSignal(g topicGroup, now time.Time) domain.Signal {
	n := len(g.repos)
	stars := 0
	recent := 0
	cutoff := now.Add(-recentUpdateDays * 24 * time.Hour)
	for _, r := range g.repos {
		stars += r.GetStargazersCount()
		if r.GetUpdatedAt().After(cutoff) {
			recent++
		}
	}

	activity := "moderate"
	if float64(recent) > float64(n)/2 {
		activity = "strong"
	}

	points := make([]domain.DataPoint, 0, topicPoints)
	for _, r := range g.repos[:min(n, topicPoints)] {
		points = append(points, domain.DataPoint{
			Metric: r.GetFullName(),
			Value:  fmt.Sprintf("%d stars", r.GetStargazersCount()),
			Change: truncateRunes(r.GetDescription(), changeRunes),
			Source: LabelGitHub,
			URL:    r.GetHTMLURL(),
		})
	}

	return domain.Signal{
		Source:   domain.SourceGitHub,
		Category: g.name,
		Title:    fmt.Sprintf("%s: %d active repositories on Solana", g.name, n),
		Description: fmt.Sprintf("Developer activity in %s is %s with %d repos (%d total stars). %d updated in the last 7 days.",
			g.name, activity, n, stars, recent),
		DataPoints: points,
		Strength:   math.Min(100, float64(n*15+min(stars, 50))),
		Timestamp:  now,
	}
}

// velocitySignal summarises repositories created in the last 30 days.
func velocitySignal(repos []*gh.Repository, now time.Time) (domain.Signal, bool) {
	cutoff := now.Add(-recentCreatedDays * 24 * time.Hour)
	var created []*gh.Repository
	for _, r := range repos {
		if r.GetCreatedAt().After(cutoff) {
			created = append(created, r)
		}
	}
	n := len(created)
	if n == 0 {
		return domain.Signal{}, false
	}

	pace := "moderate"
	if n >= highVelocity {
		pace = "high"
	}

	points := make([]domain.DataPoint, 0, velocityPoints)
	for _, r := range created[:min(n, velocityPoints)] {
		points = append(points, domain.DataPoint{
			Metric: r.GetFullName(),
			Value:  fmt.Sprintf("%d stars", r.GetStargazersCount()),
			Change: "Created " + r.GetCreatedAt().Format("1/2/2006"),
			Source: LabelGitHub,
			URL:    r.GetHTMLURL(),
		})
	}

	return domain.Signal{
		Source:   domain.SourceGitHub,
		Category: "Ecosystem",
		Title:    fmt.Sprintf("%d new Solana projects in the last 30 days", n),
		Description: fmt.Sprintf("Developer ecosystem showing %s velocity with %d new repositories created. Top languages: %s.",
			pace, n, strings.Join(topLanguages(created), ", ")),
		DataPoints: points,
		Strength:   math.Min(100, float64(n*8)),
		Timestamp:  now,
	}, true
}

// topLanguages returns the first distinct languages in order of appearance.
func topLanguages(repos []*gh.Repository) []string {
	seen := make(map[string]bool)
	var langs []string
	for _, r := range repos {
		lang := r.GetLanguage()
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		langs = append(langs, lang)
		if len(langs) == maxLanguages {
			break
		}
	}
	return langs
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
