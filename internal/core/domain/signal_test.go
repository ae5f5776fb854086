package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceKind_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		kind     SourceKind
		expected bool
	}{
		{"onchain is valid", SourceOnChain, true},
		{"github is valid", SourceGitHub, true},
		{"social is valid", SourceSocial, true},
		{"market is valid", SourceMarket, true},
		{"empty is invalid", SourceKind(""), false},
		{"unknown is invalid", SourceKind("twitter"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.IsValid())
		})
	}
}

func TestAllSourceKinds(t *testing.T) {
	kinds := AllSourceKinds()

	require.Len(t, kinds, 4)
	for _, k := range kinds {
		assert.True(t, k.IsValid())
	}
	assert.Equal(t, "onchain", kinds[0].String())
}

func TestClampStrength(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"in range", 42.5, 42.5},
		{"zero", 0, 0},
		{"upper bound", 100, 100},
		{"above range", 250, 100},
		{"negative", -3, 0},
		{"nan", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampStrength(tt.in))
		})
	}
}

func TestSignal_JSONShape(t *testing.T) {
	sig := Signal{
		Source:   SourceOnChain,
		Category: "DeFi",
		Title:    "Solana Total Value Locked",
		DataPoints: []DataPoint{
			{Metric: "Total TVL", Value: "$9.10B", Source: "DeFi Llama"},
		},
		Strength:  91,
		Timestamp: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(sig)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "onchain", decoded["source"])
	assert.Contains(t, decoded, "dataPoints")

	points := decoded["dataPoints"].([]any)
	point := points[0].(map[string]any)
	assert.NotContains(t, point, "change", "empty change is omitted")
	assert.NotContains(t, point, "url", "empty url is omitted")
}
