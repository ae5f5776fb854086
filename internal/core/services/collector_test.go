package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

func newTestSources() (*mockSource, *mockSource, *mockSource) {
	onchain := &mockSource{
		kind:   domain.SourceOnChain,
		labels: []string{"DeFi Llama", "Solana RPC"},
		signals: []domain.Signal{
			sig(domain.SourceOnChain, 50, "onchain-a"),
			sig(domain.SourceOnChain, 90, "onchain-b"),
		},
	}
	github := &mockSource{
		kind:    domain.SourceGitHub,
		labels:  []string{"GitHub"},
		signals: []domain.Signal{sig(domain.SourceGitHub, 50, "github-a")},
	}
	market := &mockSource{
		kind:    domain.SourceMarket,
		labels:  []string{"CoinGecko"},
		signals: []domain.Signal{sig(domain.SourceMarket, 70, "market-a")},
	}
	return onchain, github, market
}

func titles(signals []domain.Signal) []string {
	out := make([]string, len(signals))
	for i := range signals {
		out[i] = signals[i].Title
	}
	return out
}

func TestCollector_Collect_SortsByStrengthStable(t *testing.T) {
	onchain, github, market := newTestSources()
	c := NewCollector(onchain, github, market)

	got := c.Collect(context.Background())

	// onchain-a and github-a tie at 50; onchain was registered first.
	assert.Equal(t, []string{"onchain-b", "market-a", "onchain-a", "github-a"}, titles(got.Signals))
	assert.Equal(t, []string{"DeFi Llama", "Solana RPC", "GitHub", "CoinGecko"}, got.Sources)
}

func TestCollector_Collect_SkipsLabelsOfEmptySources(t *testing.T) {
	onchain, github, market := newTestSources()
	github.signals = nil

	got := NewCollector(onchain, github, market).Collect(context.Background())

	assert.Equal(t, []string{"DeFi Llama", "Solana RPC", "CoinGecko"}, got.Sources)
	assert.Len(t, got.Signals, 3)
}

func TestCollector_Collect_AllEmpty(t *testing.T) {
	onchain, github, market := newTestSources()
	onchain.signals, github.signals, market.signals = nil, nil, nil

	got := NewCollector(onchain, github, market).Collect(context.Background())

	require.NotNil(t, got.Signals)
	require.NotNil(t, got.Sources)
	assert.Empty(t, got.Signals)
	assert.Empty(t, got.Sources)
}

func TestCollector_Collect_PanickingSourceIsEmpty(t *testing.T) {
	onchain, github, market := newTestSources()
	github.panics = true

	got := NewCollector(onchain, github, market).Collect(context.Background())

	assert.Equal(t, []string{"DeFi Llama", "Solana RPC", "CoinGecko"}, got.Sources)
	assert.Len(t, got.Signals, 3)
	assert.EqualValues(t, 1, github.calls.Load())
}

func TestCollector_Collect_CallsEverySourceOnce(t *testing.T) {
	onchain, github, market := newTestSources()

	NewCollector(onchain, github, market).Collect(context.Background())

	assert.EqualValues(t, 1, onchain.calls.Load())
	assert.EqualValues(t, 1, github.calls.Load())
	assert.EqualValues(t, 1, market.calls.Load())
}

func TestCollector_Collect_WaitsForSlowSources(t *testing.T) {
	_, github, _ := newTestSources()
	slow := &mockSource{kind: domain.SourceMarket, labels: []string{"CoinGecko"}, block: true}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got := NewCollector(github, slow).Collect(ctx)

	assert.EqualValues(t, 1, slow.calls.Load())
	assert.Equal(t, []string{"GitHub"}, got.Sources)
}

func TestNewCollector_IgnoresNilSources(t *testing.T) {
	onchain, _, _ := newTestSources()

	c := NewCollector(nil, onchain, nil)

	require.Len(t, c.Sources(), 1)
	assert.Equal(t, domain.SourceOnChain, c.Sources()[0].Kind())
}
