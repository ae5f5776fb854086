package domain

import (
	"fmt"
	"time"
)

// Default upstream endpoints.
const (
	DefaultDefiLlamaURL = "https://api.llama.fi"
	DefaultSolanaRPCURL = "https://api.mainnet-beta.solana.com"
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
)

// DefaultGitHubQueries are the repository searches run by the GitHub source.
// Only the first MaxQueries are executed per pass.
func DefaultGitHubQueries() []string {
	return []string{
		"solana created:>2026-01-01 stars:>5",
		"solana agent ai created:>2026-01-01",
		"solana depin created:>2025-10-01 stars:>3",
		"anchor solana created:>2025-10-01 stars:>10",
		"solana token-2022 OR token-extensions",
		"solana blinks OR actions created:>2025-06-01",
		"solana compressed-nft OR state-compression",
	}
}

// GitHubSettings configures the GitHub signal source.
type GitHubSettings struct {
	// Token is an optional access token. Empty means unauthenticated search.
	Token string

	// Queries are repository search queries.
	Queries []string

	// MaxQueries caps how many queries run per pass.
	MaxQueries int

	// PerPage is the search page size.
	PerPage int

	// QueryInterval paces consecutive searches.
	QueryInterval time.Duration
}

// OnChainSettings configures the DeFi Llama and Solana RPC feeds.
type OnChainSettings struct {
	DefiLlamaURL string
	RPCURL       string

	// MinProtocolTVL drops protocols below this TVL in USD.
	MinProtocolTVL float64
}

// MarketSettings configures the CoinGecko feed.
type MarketSettings struct {
	CoinGeckoURL string
	Category     string
	PerPage      int
}

// HTTPSettings configures the shared upstream HTTP client.
type HTTPSettings struct {
	// Timeout bounds each upstream request.
	Timeout time.Duration

	// CacheTTL is how long successful GET responses are reused.
	// Zero disables caching.
	CacheTTL time.Duration

	// CacheSize bounds the number of cached responses.
	CacheSize int
}

// HistorySettings configures the optional analysis run history. Analysis
// itself keeps no state; history is recorded only once enabled.
type HistorySettings struct {
	// Enabled records every completed analysis run. Off by default.
	Enabled bool

	// MaxRuns is how many runs are kept; older runs are pruned.
	MaxRuns int
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr           string
	RequestTimeout time.Duration
}

// Settings holds all application settings.
type Settings struct {
	GitHub  GitHubSettings
	OnChain OnChainSettings
	Market  MarketSettings
	HTTP    HTTPSettings
	Server  ServerSettings
	History HistorySettings

	// PatternsFile optionally replaces the built-in narrative catalogue.
	PatternsFile string
}

// DefaultSettings returns settings with sensible defaults.
// Intervals and TTLs follow the upstream politeness the feeds expect.
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHubSettings{
			Queries:       DefaultGitHubQueries(),
			MaxQueries:    3,
			PerPage:       15,
			QueryInterval: 500 * time.Millisecond,
		},
		OnChain: OnChainSettings{
			DefiLlamaURL:   DefaultDefiLlamaURL,
			RPCURL:         DefaultSolanaRPCURL,
			MinProtocolTVL: 1_000_000,
		},
		Market: MarketSettings{
			CoinGeckoURL: DefaultCoinGeckoURL,
			Category:     "solana-ecosystem",
			PerPage:      30,
		},
		HTTP: HTTPSettings{
			Timeout:   15 * time.Second,
			CacheTTL:  time.Hour,
			CacheSize: 128,
		},
		Server: ServerSettings{
			Addr:           ":8080",
			RequestTimeout: 30 * time.Second,
		},
		History: HistorySettings{
			MaxRuns: DefaultHistoryRuns,
		},
	}
}

// Validate checks settings for values no component can work with.
func (s *Settings) Validate() error {
	if s.GitHub.MaxQueries < 0 {
		return fmt.Errorf("%w: github max_queries must not be negative", ErrInvalidInput)
	}
	if s.GitHub.PerPage < 1 || s.GitHub.PerPage > 100 {
		return fmt.Errorf("%w: github per_page must be between 1 and 100", ErrInvalidInput)
	}
	if s.Market.PerPage < 1 || s.Market.PerPage > 250 {
		return fmt.Errorf("%w: market per_page must be between 1 and 250", ErrInvalidInput)
	}
	if s.HTTP.Timeout <= 0 {
		return fmt.Errorf("%w: http timeout must be positive", ErrInvalidInput)
	}
	if s.HTTP.CacheTTL < 0 {
		return fmt.Errorf("%w: http cache_ttl must not be negative", ErrInvalidInput)
	}
	if s.HTTP.CacheTTL > 0 && s.HTTP.CacheSize < 1 {
		return fmt.Errorf("%w: http cache_size must be positive when caching", ErrInvalidInput)
	}
	if s.History.MaxRuns < 1 {
		return fmt.Errorf("%w: history max_runs must be positive", ErrInvalidInput)
	}
	if s.Server.RequestTimeout <= 0 {
		return fmt.Errorf("%w: server request_timeout must be positive", ErrInvalidInput)
	}
	return nil
}
