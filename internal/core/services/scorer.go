package services

import (
	"math"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

// Scoring thresholds.
const (
	acceleratingStrength = 70.0
	acceleratingSources  = 3
	matureStrength       = 50.0
	matureSources        = 2

	strengthWeight = 0.6
	sourceWeight   = 10
	volumeWeight   = 5
	volumeCap      = 25
	maxConfidence  = 100
)

// Score is the aggregate profile of a matched signal set.
type Score struct {
	MeanStrength    float64
	DistinctSources int
	SignalCount     int
	Confidence      int
	Trend           domain.Trend
}

// ScoreSignals computes the full score for a matched signal set.
// An empty set scores zero and is emerging.
func ScoreSignals(signals []domain.Signal) Score {
	sc := Score{
		SignalCount: len(signals),
		Trend:       domain.TrendEmerging,
	}
	if len(signals) == 0 {
		return sc
	}

	sc.MeanStrength = meanStrength(signals)
	sc.DistinctSources = distinctSources(signals)
	sc.Confidence = confidence(sc.MeanStrength, sc.DistinctSources, sc.SignalCount)
	sc.Trend = classify(sc.MeanStrength, sc.DistinctSources)
	return sc
}

// Confidence returns the confidence score in [0,100] for a matched signal set.
func Confidence(signals []domain.Signal) int {
	return ScoreSignals(signals).Confidence
}

// ClassifyTrend returns the trend for a matched signal set.
// TrendDeclining is never returned.
func ClassifyTrend(signals []domain.Signal) domain.Trend {
	return ScoreSignals(signals).Trend
}

func confidence(mean float64, sources, count int) int {
	volume := min(volumeWeight*count, volumeCap)
	raw := strengthWeight*mean + float64(sourceWeight*sources) + float64(volume)
	c := int(math.Round(raw))
	return max(0, min(maxConfidence, c))
}

func classify(mean float64, sources int) domain.Trend {
	switch {
	case mean > acceleratingStrength && sources >= acceleratingSources:
		return domain.TrendAccelerating
	case mean > matureStrength && sources >= matureSources:
		return domain.TrendMature
	default:
		return domain.TrendEmerging
	}
}

func meanStrength(signals []domain.Signal) float64 {
	var sum float64
	for i := range signals {
		sum += signals[i].Strength
	}
	return sum / float64(len(signals))
}

func distinctSources(signals []domain.Signal) int {
	seen := make(map[domain.SourceKind]struct{}, len(domain.AllSourceKinds()))
	for i := range signals {
		seen[signals[i].Source] = struct{}{}
	}
	return len(seen)
}
