package onchain

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/custodia-labs/ronin/internal/connectors/numfmt"
	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Signal thresholds.
const (
	moverThreshold  = 10.0
	maxMovers       = 5
	sectorMinSize   = 3
	sectorThreshold = 5.0
	sectorPoints    = 3
	tvlScale        = 1e10
	tpsScale        = 5000.0
)

const solanaTVLURL = "https://defillama.com/chain/Solana"

func buildSignals(tvl float64, protocols []protocol, stats chainStats, now time.Time) []domain.Signal {
	var signals []domain.Signal

	if tvl > 0 {
		signals = append(signals, tvlSignal(tvl, len(protocols), now))
	}
	for _, p := range topMovers(protocols) {
		signals = append(signals, moverSignal(p, now))
	}
	if stats.TPS > 0 {
		signals = append(signals, throughputSignal(stats, now))
	}
	signals = append(signals, sectorSignals(protocols, now)...)

	return signals
}

func tvlSignal(tvl float64, protocolCount int, now time.Time) domain.Signal {
	total := numfmt.Billions(tvl, 2)
	return domain.Signal{
		Source:      domain.SourceOnChain,
		Category:    "DeFi",
		Title:       "Solana Total Value Locked",
		Description: fmt.Sprintf("Solana ecosystem holds %s in TVL across %d+ protocols.", total, protocolCount),
		DataPoints: []domain.DataPoint{
			{Metric: "Total TVL", Value: total, Source: LabelDefiLlama, URL: solanaTVLURL},
		},
		Strength:  numfmt.Round(tvl / tvlScale * 100),
		Timestamp: now,
	}
}

// topMovers returns up to maxMovers protocols whose 7d change exceeds the
// threshold in either direction, largest absolute change first.
func topMovers(protocols []protocol) []protocol {
	movers := make([]protocol, 0, len(protocols))
	for _, p := range protocols {
		if math.Abs(p.change7d()) > moverThreshold {
			movers = append(movers, p)
		}
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return math.Abs(movers[i].change7d()) > math.Abs(movers[j].change7d())
	})
	if len(movers) > maxMovers {
		movers = movers[:maxMovers]
	}
	return movers
}

func moverSignal(p protocol, now time.Time) domain.Signal {
	c7d := p.change7d()
	direction := "declining"
	if c7d > 0 {
		direction = "growing"
	}
	category := p.Category
	if category == "" {
		category = "DeFi"
	}
	current := numfmt.Millions(p.TVL, 1)

	return domain.Signal{
		Source:   domain.SourceOnChain,
		Category: category,
		Title:    fmt.Sprintf("%s TVL %s", p.Name, direction),
		Description: fmt.Sprintf("%s (%s) has seen %s%% TVL change over 7 days. Current TVL: %s.",
			p.Name, p.Category, numfmt.Signed(c7d, 1), current),
		DataPoints: []domain.DataPoint{
			{Metric: "TVL", Value: current, Change: numfmt.Signed(c7d, 1) + "% (7d)", Source: LabelDefiLlama},
			{Metric: "24h Change", Value: numfmt.Signed(p.change1d(), 1) + "%", Source: LabelDefiLlama},
		},
		Strength:  numfmt.Round(math.Abs(c7d) * 2),
		Timestamp: now,
	}
}

func throughputSignal(stats chainStats, now time.Time) domain.Signal {
	slot := numfmt.Grouped(int64(stats.Slot))
	return domain.Signal{
		Source:   domain.SourceOnChain,
		Category: "Infrastructure",
		Title:    "Solana Network Throughput",
		Description: fmt.Sprintf("Solana processing ~%s TPS at slot %s (epoch %d).",
			numfmt.Grouped(stats.TPS), slot, stats.Epoch),
		DataPoints: []domain.DataPoint{
			{Metric: "TPS", Value: stats.TPS, Source: LabelSolanaRPC},
			{Metric: "Current Slot", Value: slot, Source: LabelSolanaRPC},
		},
		Strength:  numfmt.Round(float64(stats.TPS) / tpsScale * 100),
		Timestamp: now,
	}
}

// sectorSignals groups protocols by category, in order of first appearance,
// and reports sectors whose average 7d change is large enough.
func sectorSignals(protocols []protocol, now time.Time) []domain.Signal {
	var order []string
	groups := make(map[string][]protocol)
	for _, p := range protocols {
		cat := p.Category
		if cat == "" {
			cat = "Other"
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], p)
	}

	var signals []domain.Signal
	for _, cat := range order {
		members := groups[cat]
		if len(members) < sectorMinSize {
			continue
		}

		var sumChange, sumTVL float64
		for _, p := range members {
			sumChange += p.change7d()
			sumTVL += p.TVL
		}
		avg := sumChange / float64(len(members))
		if math.Abs(avg) <= sectorThreshold {
			continue
		}

		trend := "contraction"
		if avg > 0 {
			trend = "expansion"
		}

		points := make([]domain.DataPoint, 0, sectorPoints)
		for _, p := range members[:min(sectorPoints, len(members))] {
			points = append(points, domain.DataPoint{
				Metric: p.Name,
				Value:  numfmt.Millions(p.TVL, 1),
				Change: numfmt.Signed(p.change7d(), 1) + "%",
				Source: LabelDefiLlama,
			})
		}

		signals = append(signals, domain.Signal{
			Source:   domain.SourceOnChain,
			Category: cat,
			Title:    fmt.Sprintf("%s sector %s on Solana", cat, trend),
			Description: fmt.Sprintf("%d %s protocols averaging %s%% change over 7 days. Combined TVL: %s.",
				len(members), cat, numfmt.Signed(avg, 1), numfmt.Millions(sumTVL, 0)),
			DataPoints: points,
			Strength:   numfmt.Round(math.Abs(avg)*3 + float64(len(members))*5),
			Timestamp:  now,
		})
	}
	return signals
}
