package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SignalSource = (*Source)(nil)

// LabelGitHub is the feed label credited when the source returns signals.
const LabelGitHub = "GitHub"

// Searcher runs repository searches. *Client satisfies it.
type Searcher interface {
	SearchRepositories(ctx context.Context, query string, perPage int) ([]*gh.Repository, error)
}

// Config holds configuration for the GitHub source.
type Config struct {
	// Queries are the repository searches, run in order.
	Queries []string

	// MaxQueries caps how many queries run per pass. Zero disables the source.
	MaxQueries int

	// PerPage is the search page size.
	PerPage int
}

// Source produces developer activity signals from repository search.
type Source struct {
	client  Searcher
	queries []string
	perPage int
	now     func() time.Time
}

// New creates a GitHub source.
func New(client Searcher, cfg Config) *Source {
	queries := cfg.Queries
	if queries == nil {
		queries = domain.DefaultGitHubQueries()
	}
	if cfg.MaxQueries >= 0 && cfg.MaxQueries < len(queries) {
		queries = queries[:cfg.MaxQueries]
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 15
	}
	return &Source{
		client:  client,
		queries: append([]string(nil), queries...),
		perPage: cfg.PerPage,
		now:     time.Now,
	}
}

// Kind returns domain.SourceGitHub.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceGitHub
}

// Labels returns the GitHub feed label.
func (s *Source) Labels() []string {
	return []string{LabelGitHub}
}

// Queries returns the searches run per pass.
func (s *Source) Queries() []string {
	return append([]string(nil), s.queries...)
}

// Collect runs each query in turn and builds signals from the deduplicated
// repositories. A failed query is logged and skipped.
func (s *Source) Collect(ctx context.Context) []domain.Signal {
	var repos []*gh.Repository
	for _, query := range s.queries {
		if ctx.Err() != nil {
			break
		}
		found, err := s.client.SearchRepositories(ctx, query, s.perPage)
		if err != nil {
			logger.Warn("github: search %q: %v", query, err)
			continue
		}
		repos = append(repos, found...)
	}

	repos = dedupe(repos)
	if len(repos) == 0 {
		return nil
	}

	signals := buildSignals(repos, s.now())
	logger.Debug("github: %d queries, %d repos -> %d signals", len(s.queries), len(repos), len(signals))
	return signals
}

// dedupe keeps the first occurrence of each repository by full name.
func dedupe(repos []*gh.Repository) []*gh.Repository {
	seen := make(map[string]bool, len(repos))
	out := make([]*gh.Repository, 0, len(repos))
	for _, r := range repos {
		if r == nil {
			continue
		}
		name := r.GetFullName()
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, r)
	}
	return out
}
