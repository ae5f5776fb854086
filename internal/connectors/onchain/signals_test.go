package onchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

func ptr(v float64) *float64 { return &v }

func proto(name, category string, tvl, c7d float64) protocol {
	return protocol{Name: name, Category: category, Chains: []string{"Solana"}, TVL: tvl, Change7d: ptr(c7d), Change1d: ptr(0)}
}

func TestTopMovers(t *testing.T) {
	protocols := []protocol{
		proto("a", "Dexes", 1e9, 11),
		proto("b", "Dexes", 1e9, -40),
		proto("c", "Dexes", 1e9, 10),
		proto("d", "Dexes", 1e9, 25),
		proto("e", "Dexes", 1e9, 15),
		proto("f", "Dexes", 1e9, -12),
		proto("g", "Dexes", 1e9, 33),
	}

	movers := topMovers(protocols)

	names := make([]string, len(movers))
	for i, m := range movers {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"b", "g", "d", "e", "f"}, names)
}

func TestMoverSignal_Declining(t *testing.T) {
	s := moverSignal(proto("Drift", "", 250.3e6, -60), testNow)

	assert.Equal(t, "Drift TVL declining", s.Title)
	assert.Equal(t, "DeFi", s.Category)
	assert.Equal(t, "Drift () has seen -60.0% TVL change over 7 days. Current TVL: $250.3M.", s.Description)
	assert.Equal(t, 100.0, s.Strength)
}

func TestSectorSignals(t *testing.T) {
	protocols := []protocol{
		proto("Raydium", "Dexes", 900e6, 8),
		proto("Jito", "Liquid Staking", 2.5e9, 1),
		proto("Orca", "Dexes", 400e6, 6),
		proto("Meteora", "Dexes", 300e6, 7),
		proto("Phoenix", "Dexes", 50e6, 3),
		proto("Marinade", "Liquid Staking", 1.2e9, 1),
		proto("Sanctum", "Liquid Staking", 600e6, 1),
	}

	signals := sectorSignals(protocols, testNow)

	require.Len(t, signals, 1)
	s := signals[0]
	assert.Equal(t, "Dexes", s.Category)
	assert.Equal(t, "Dexes sector expansion on Solana", s.Title)
	assert.Equal(t, "4 Dexes protocols averaging +6.0% change over 7 days. Combined TVL: $1650M.", s.Description)
	// 6*3 + 4*5
	assert.Equal(t, 38.0, s.Strength)
	require.Len(t, s.DataPoints, 3)
	assert.Equal(t, "Raydium", s.DataPoints[0].Metric)
}

func TestSectorSignals_Contraction(t *testing.T) {
	protocols := []protocol{
		proto("A", "", 10e6, -9),
		proto("B", "", 10e6, -9),
		proto("C", "", 10e6, -9),
	}

	signals := sectorSignals(protocols, testNow)

	require.Len(t, signals, 1)
	assert.Equal(t, "Other sector contraction on Solana", signals[0].Title)
}

func TestBuildSignals_Empty(t *testing.T) {
	assert.Empty(t, buildSignals(0, nil, chainStats{}, testNow))
}

func TestBuildSignals_StrengthBounds(t *testing.T) {
	signals := buildSignals(5e11, nil, chainStats{TPS: 100_000, Slot: 1}, testNow)

	require.Len(t, signals, 2)
	for _, s := range signals {
		assert.Equal(t, domain.MaxStrength, s.Strength)
	}
}
