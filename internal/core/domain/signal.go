package domain

import (
	"math"
	"time"
)

// SourceKind identifies which kind of upstream feed produced a signal.
type SourceKind string

// Known source kinds.
const (
	// SourceOnChain covers DeFi TVL and chain RPC data.
	SourceOnChain SourceKind = "onchain"

	// SourceGitHub covers repository search activity.
	SourceGitHub SourceKind = "github"

	// SourceSocial is reserved; no producer emits it yet.
	SourceSocial SourceKind = "social"

	// SourceMarket covers token prices and volume.
	SourceMarket SourceKind = "market"
)

// AllSourceKinds returns every source kind in display order.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceOnChain, SourceGitHub, SourceSocial, SourceMarket}
}

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceOnChain, SourceGitHub, SourceSocial, SourceMarket:
		return true
	default:
		return false
	}
}

// String returns the source kind as a string.
func (k SourceKind) String() string {
	return string(k)
}

// Strength bounds.
const (
	MinStrength = 0.0
	MaxStrength = 100.0
)

// DataPoint is a display metric attached to a Signal.
// It has no lifecycle of its own.
type DataPoint struct {
	// Metric is the metric name (e.g. "Total TVL").
	Metric string `json:"metric"`

	// Value is either a number or preformatted text.
	Value any `json:"value"`

	// Change is an optional free-form change indicator, usually a signed percentage.
	Change string `json:"change,omitempty"`

	// Source is the provenance label (e.g. "DeFi Llama").
	Source string `json:"source"`

	// URL optionally links to the underlying data.
	URL string `json:"url,omitempty"`
}

// Signal is a normalised observation produced by exactly one source.
// Signals are immutable once produced and live for one analysis pass.
type Signal struct {
	// Source is the kind of feed that produced the signal.
	Source SourceKind `json:"source"`

	// Category is free text; granularity varies between sources.
	Category string `json:"category"`

	// Title is a one-line headline.
	Title string `json:"title"`

	// Description is the human-readable detail.
	Description string `json:"description"`

	// DataPoints are ordered display metrics.
	DataPoints []DataPoint `json:"dataPoints"`

	// Strength is the source-defined intensity in [0,100].
	Strength float64 `json:"strength"`

	// Timestamp is when the signal was produced.
	Timestamp time.Time `json:"timestamp"`
}

// ClampStrength bounds a raw strength value into [0,100].
// NaN maps to zero.
func ClampStrength(v float64) float64 {
	if math.IsNaN(v) || v < MinStrength {
		return MinStrength
	}
	if v > MaxStrength {
		return MaxStrength
	}
	return v
}
