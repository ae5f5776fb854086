package market

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/ronin/internal/connectors/numfmt"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Signal thresholds.
const (
	solSymbol          = "sol"
	moveThreshold      = 10.0
	maxMovers          = 5
	minMovers          = 2
	diversityThreshold = 40.0
)

func buildSignals(tokens []token, now time.Time) []domain.Signal {
	if len(tokens) == 0 {
		return nil
	}

	var signals []domain.Signal

	sol := findSOL(tokens)
	if sol != nil {
		signals = append(signals, solSignal(sol, now))
	}

	gainers := movers(tokens, func(c float64) bool { return c > moveThreshold }, func(a, b float64) bool { return a > b })
	if len(gainers) >= minMovers {
		signals = append(signals, gainersSignal(gainers, now))
	}

	losers := movers(tokens, func(c float64) bool { return c < -moveThreshold }, func(a, b float64) bool { return a < b })
	if len(losers) >= minMovers {
		signals = append(signals, losersSignal(losers, now))
	}

	if s, ok := volumeSignal(tokens, sol, now); ok {
		signals = append(signals, s)
	}

	return signals
}

func findSOL(tokens []token) *token {
	for i := range tokens {
		if tokens[i].Symbol == solSymbol {
			return &tokens[i]
		}
	}
	return nil
}

func solSignal(sol *token, now time.Time) domain.Signal {
	price := "$" + numfmt.Fixed(sol.CurrentPrice, 2)
	change := numfmt.Signed(sol.PriceChange24h, 1) + "%"
	capText := numfmt.Billions(sol.MarketCap, 1)
	volume := numfmt.Billions(sol.TotalVolume, 2)

	return domain.Signal{
		Source:   domain.SourceMarket,
		Category: "Market",
		Title:    "SOL Market Position",
		Description: fmt.Sprintf("SOL at %s with %s (24h). Market cap: %s. 24h volume: %s.",
			price, change, capText, volume),
		DataPoints: []domain.DataPoint{
			{Metric: "Price", Value: price, Change: change + " (24h)", Source: LabelCoinGecko},
			{Metric: "Market Cap", Value: capText, Source: LabelCoinGecko},
			{Metric: "24h Volume", Value: volume, Source: LabelCoinGecko},
		},
		Strength:  domain.ClampStrength(50 + math.Abs(sol.PriceChange24h)*3),
		Timestamp: now,
	}
}

// movers returns up to maxMovers non-SOL tokens whose 7d change passes keep,
// ordered by less. Tokens without a 7d change are skipped.
func movers(tokens []token, keep func(float64) bool, less func(a, b float64) bool) []token {
	out := make([]token, 0, maxMovers)
	for _, t := range tokens {
		if t.PriceChange7d == nil || t.Symbol == solSymbol {
			continue
		}
		if keep(*t.PriceChange7d) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i].change7d(), out[j].change7d())
	})
	if len(out) > maxMovers {
		out = out[:maxMovers]
	}
	return out
}

func gainersSignal(gainers []token, now time.Time) domain.Signal {
	names := make([]string, 0, len(gainers))
	points := make([]domain.DataPoint, 0, len(gainers))
	var strength float64
	for _, g := range gainers {
		c := g.change7d()
		names = append(names, fmt.Sprintf("%s (+%s%%)", strings.ToUpper(g.Symbol), numfmt.Fixed(c, 0)))
		points = append(points, domain.DataPoint{
			Metric: g.Name,
			Value:  numfmt.Price(g.CurrentPrice),
			Change: "+" + numfmt.Fixed(c, 1) + "% (7d)",
			Source: LabelCoinGecko,
		})
		strength += c / 5
	}

	return domain.Signal{
		Source:      domain.SourceMarket,
		Category:    "Momentum",
		Title:       fmt.Sprintf("%d Solana tokens surging this week", len(gainers)),
		Description: fmt.Sprintf("Notable 7-day gains across the Solana ecosystem: %s.", strings.Join(names, ", ")),
		DataPoints:  points,
		Strength:    domain.ClampStrength(strength),
		Timestamp:   now,
	}
}

func losersSignal(losers []token, now time.Time) domain.Signal {
	names := make([]string, 0, len(losers))
	points := make([]domain.DataPoint, 0, len(losers))
	var strength float64
	for _, l := range losers {
		c := l.change7d()
		names = append(names, fmt.Sprintf("%s (%s%%)", strings.ToUpper(l.Symbol), numfmt.Fixed(c, 0)))
		points = append(points, domain.DataPoint{
			Metric: l.Name,
			Value:  numfmt.Price(l.CurrentPrice),
			Change: numfmt.Fixed(c, 1) + "% (7d)",
			Source: LabelCoinGecko,
		})
		strength += math.Abs(c) / 5
	}

	return domain.Signal{
		Source:      domain.SourceMarket,
		Category:    "Risk",
		Title:       fmt.Sprintf("%d Solana tokens declining this week", len(losers)),
		Description: fmt.Sprintf("Notable 7-day declines: %s.", strings.Join(names, ", ")),
		DataPoints:  points,
		Strength:    domain.ClampStrength(strength),
		Timestamp:   now,
	}
}

func volumeSignal(tokens []token, sol *token, now time.Time) (domain.Signal, bool) {
	var total float64
	for _, t := range tokens {
		total += t.TotalVolume
	}
	var solVolume float64
	if sol != nil {
		solVolume = sol.TotalVolume
	}
	alt := total - solVolume
	if alt <= 0 || total <= 0 {
		return domain.Signal{}, false
	}

	share := alt / total * 100
	verdict := "SOL dominance"
	if share > diversityThreshold {
		verdict = "healthy ecosystem diversity"
	}
	totalText := numfmt.Billions(total, 2)
	shareText := numfmt.Fixed(share, 0) + "%"

	return domain.Signal{
		Source:   domain.SourceMarket,
		Category: "Liquidity",
		Title:    "Solana ecosystem token trading volume",
		Description: fmt.Sprintf("Total 24h volume across tracked Solana tokens: %s. Non-SOL tokens account for %s of volume, indicating %s.",
			totalText, shareText, verdict),
		DataPoints: []domain.DataPoint{
			{Metric: "Total Volume", Value: totalText, Source: LabelCoinGecko},
			{Metric: "Alt Token Share", Value: shareText, Source: LabelCoinGecko},
		},
		Strength:  numfmt.Round(share*1.5 + 20),
		Timestamp: now,
	}, true
}
