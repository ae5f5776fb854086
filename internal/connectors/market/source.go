package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.SignalSource = (*Source)(nil)

// LabelCoinGecko is credited when the source returns signals.
const LabelCoinGecko = "CoinGecko"

// Client performs JSON GET requests. Satisfied by *httpjson.Fetcher.
type Client interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Config holds configuration for the market source.
type Config struct {
	// BaseURL is the CoinGecko API base URL.
	BaseURL string

	// Category is the CoinGecko category id (default: solana-ecosystem).
	Category string

	// PerPage is the number of tokens fetched, by market cap (default: 30).
	PerPage int
}

// token is an entry of /coins/markets.
type token struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	CurrentPrice   float64  `json:"current_price"`
	MarketCap      float64  `json:"market_cap"`
	TotalVolume    float64  `json:"total_volume"`
	PriceChange24h float64  `json:"price_change_percentage_24h"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
}

func (t *token) change7d() float64 {
	if t.PriceChange7d == nil {
		return 0
	}
	return *t.PriceChange7d
}

// Source produces market signals from CoinGecko.
type Source struct {
	client   Client
	baseURL  string
	category string
	perPage  int
	now      func() time.Time
}

// New creates a market source.
func New(client Client, cfg Config) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultCoinGeckoURL
	}
	if cfg.Category == "" {
		cfg.Category = "solana-ecosystem"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 30
	}
	return &Source{
		client:   client,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		category: cfg.Category,
		perPage:  cfg.PerPage,
		now:      time.Now,
	}
}

// Kind returns domain.SourceMarket.
func (s *Source) Kind() domain.SourceKind {
	return domain.SourceMarket
}

// Labels returns the CoinGecko label.
func (s *Source) Labels() []string {
	return []string{LabelCoinGecko}
}

// Collect fetches the token list and builds market signals.
func (s *Source) Collect(ctx context.Context) []domain.Signal {
	tokens, err := s.fetchTokens(ctx)
	if err != nil {
		logger.Warn("market: %v", err)
		return nil
	}
	signals := buildSignals(tokens, s.now())
	logger.Debug("market: %d tokens -> %d signals", len(tokens), len(signals))
	return signals
}

func (s *Source) marketsURL() string {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("category", s.category)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(s.perPage))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "7d")
	return s.baseURL + "/coins/markets?" + q.Encode()
}

func (s *Source) fetchTokens(ctx context.Context) ([]token, error) {
	var tokens []token
	if err := s.client.GetJSON(ctx, s.marketsURL(), &tokens); err != nil {
		return nil, fmt.Errorf("coingecko markets: %w", err)
	}
	return tokens, nil
}
