package services

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyGitHubToken      = "github.token"
	keyGitHubQueries    = "github.queries"
	keyGitHubMaxQueries = "github.max_queries"
	keyGitHubPerPage    = "github.per_page"
	keyGitHubIntervalMS = "github.query_interval_ms"
	keyDefiLlamaURL     = "onchain.defillama_url"
	keyRPCURL           = "onchain.rpc_url"
	keyMinProtocolTVL   = "onchain.min_protocol_tvl"
	keyCoinGeckoURL     = "market.coingecko_url"
	keyMarketCategory   = "market.category"
	keyMarketPerPage    = "market.per_page"
	keyHTTPTimeout      = "http.timeout_seconds"
	keyHTTPCacheTTL     = "http.cache_ttl_seconds"
	keyHTTPCacheSize    = "http.cache_size"
	keyCataloguePath    = "catalogue.path"
	keyServerAddr       = "server.addr"
	keyServerTimeout    = "server.request_timeout_seconds"
	keyHistoryEnabled   = "history.enabled"
	keyHistoryMaxRuns   = "history.max_runs"
)

var settingKeys = []string{
	keyGitHubToken, keyGitHubQueries, keyGitHubMaxQueries, keyGitHubPerPage, keyGitHubIntervalMS,
	keyDefiLlamaURL, keyRPCURL, keyMinProtocolTVL,
	keyCoinGeckoURL, keyMarketCategory, keyMarketPerPage,
	keyHTTPTimeout, keyHTTPCacheTTL, keyHTTPCacheSize,
	keyCataloguePath,
	keyServerAddr, keyServerTimeout,
	keyHistoryEnabled, keyHistoryMaxRuns,
}

// Environment overrides.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvDefiLlamaURL = "RONIN_DEFILLAMA_URL"
	EnvRPCURL       = "RONIN_SOLANA_RPC_URL"
	EnvCoinGeckoURL = "RONIN_COINGECKO_URL"
	EnvPatternsFile = "RONIN_PATTERNS_FILE"
	EnvPort         = "PORT"
)

// SettingsService resolves settings from defaults, the config store and the
// environment, in increasing precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only defaults and environment apply.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get returns the effective settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		GitHub: domain.GitHubSettings{
			Token:         s.getString(keyGitHubToken, ""),
			Queries:       s.getStringSlice(keyGitHubQueries, defaults.GitHub.Queries),
			MaxQueries:    s.getInt(keyGitHubMaxQueries, defaults.GitHub.MaxQueries),
			PerPage:       s.getInt(keyGitHubPerPage, defaults.GitHub.PerPage),
			QueryInterval: s.getDuration(keyGitHubIntervalMS, time.Millisecond, defaults.GitHub.QueryInterval),
		},
		OnChain: domain.OnChainSettings{
			DefiLlamaURL:   s.getString(keyDefiLlamaURL, defaults.OnChain.DefiLlamaURL),
			RPCURL:         s.getString(keyRPCURL, defaults.OnChain.RPCURL),
			MinProtocolTVL: s.getFloat(keyMinProtocolTVL, defaults.OnChain.MinProtocolTVL),
		},
		Market: domain.MarketSettings{
			CoinGeckoURL: s.getString(keyCoinGeckoURL, defaults.Market.CoinGeckoURL),
			Category:     s.getString(keyMarketCategory, defaults.Market.Category),
			PerPage:      s.getInt(keyMarketPerPage, defaults.Market.PerPage),
		},
		HTTP: domain.HTTPSettings{
			Timeout:   s.getDuration(keyHTTPTimeout, time.Second, defaults.HTTP.Timeout),
			CacheTTL:  s.getDuration(keyHTTPCacheTTL, time.Second, defaults.HTTP.CacheTTL),
			CacheSize: s.getInt(keyHTTPCacheSize, defaults.HTTP.CacheSize),
		},
		Server: domain.ServerSettings{
			Addr:           s.getString(keyServerAddr, defaults.Server.Addr),
			RequestTimeout: s.getDuration(keyServerTimeout, time.Second, defaults.Server.RequestTimeout),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			MaxRuns: s.getInt(keyHistoryMaxRuns, defaults.History.MaxRuns),
		},
		PatternsFile: s.getString(keyCataloguePath, ""),
	}

	s.applyEnv(settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Keys returns every recognised config key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Set stores a single config key and persists it.
func (s *SettingsService) Set(key string, value any) error {
	if s.configStore == nil {
		return errors.New("config store not configured")
	}
	if !slices.Contains(settingKeys, key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ConfigPath returns the config file path, or empty without a store.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) applyEnv(settings *domain.Settings) {
	if v := s.env(EnvGitHubToken); v != "" {
		settings.GitHub.Token = v
	}
	if v := s.env(EnvDefiLlamaURL); v != "" {
		settings.OnChain.DefiLlamaURL = v
	}
	if v := s.env(EnvRPCURL); v != "" {
		settings.OnChain.RPCURL = v
	}
	if v := s.env(EnvCoinGeckoURL); v != "" {
		settings.Market.CoinGeckoURL = v
	}
	if v := s.env(EnvPatternsFile); v != "" {
		settings.PatternsFile = v
	}
	if v := s.env(EnvPort); v != "" {
		settings.Server.Addr = ":" + strings.TrimPrefix(v, ":")
	}
}

func (s *SettingsService) env(name string) string {
	if s.lookupEnv == nil {
		return ""
	}
	v, _ := s.lookupEnv(name)
	return strings.TrimSpace(v)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if s.configStore == nil {
		return defaultVal
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if s.configStore == nil {
		return defaultVal
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if s.configStore == nil {
		return defaultVal
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if s.configStore == nil {
		return defaultVal
	}
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	if s.configStore == nil {
		return defaultVal
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * unit
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if s.configStore == nil {
		return defaultVal
	}
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}
