package onchain

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SignalSource = (*Source)(nil)

// Feed labels credited when the source returns signals.
const (
	LabelDefiLlama = "DeFi Llama"
	LabelSolanaRPC = "Solana RPC"
)

// Config holds configuration for the on-chain source.
type Config struct {
	// DefiLlamaURL is the DeFi Llama API base URL.
	DefiLlamaURL string

	// RPCURL is the Solana JSON-RPC endpoint.
	RPCURL string

	// MinProtocolTVL drops protocols at or below this TVL in USD.
	MinProtocolTVL float64
}

// Source produces signals from DeFi Llama and Solana RPC.
type Source struct {
	client         Client
	defiLlamaURL   string
	rpcURL         string
	minProtocolTVL float64
	now            func() time.Time
}

// New creates an on-chain source.
func New(client Client, cfg Config) *Source {
	if cfg.DefiLlamaURL == "" {
		cfg.DefiLlamaURL = domain.DefaultDefiLlamaURL
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = domain.DefaultSolanaRPCURL
	}
	return &Source{
		client:         client,
		defiLlamaURL:   strings.TrimRight(cfg.DefiLlamaURL, "/"),
		rpcURL:         cfg.RPCURL,
		minProtocolTVL: cfg.MinProtocolTVL,
		now:            time.Now,
	}
}

// Kind returns domain.SourceOnChain.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceOnChain
}

// Labels returns both feed labels. They are credited together whenever the
// source returns anything, even if only one feed answered.
func (s *Source) Labels() []string {
	return []string{LabelDefiLlama, LabelSolanaRPC}
}

// Collect fetches all four upstream calls concurrently and builds signals.
func (s *Source) Collect(ctx context.Context) []domain.Signal {
	var (
		wg        sync.WaitGroup
		tvl       float64
		protocols []protocol
		slot      uint64
		tps       int64
		tvlErr    error
		protoErr  error
		slotErr   error
		tpsErr    error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		tvl, tvlErr = s.fetchSolanaTVL(ctx)
	}()
	go func() {
		defer wg.Done()
		protocols, protoErr = s.fetchProtocols(ctx)
	}()
	go func() {
		defer wg.Done()
		slot, slotErr = s.fetchSlot(ctx)
	}()
	go func() {
		defer wg.Done()
		tps, tpsErr = s.fetchTPS(ctx)
	}()
	wg.Wait()

	for _, err := range []error{tvlErr, protoErr, slotErr, tpsErr} {
		if err != nil {
			logger.Warn("onchain: %v", err)
		}
	}

	var stats chainStats
	if slotErr == nil && tpsErr == nil {
		stats = chainStats{Slot: slot, Epoch: slot / slotsPerEpoch, TPS: tps}
	}

	signals := buildSignals(tvl, protocols, stats, s.now())
	logger.Debug("onchain: tvl=%.0f protocols=%d tps=%d -> %d signals", tvl, len(protocols), stats.TPS, len(signals))
	return signals
}
