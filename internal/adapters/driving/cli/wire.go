package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ronin/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ronin/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ronin/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ronin/internal/catalogue"
	"github.com/custodia-labs/ronin/internal/connectors/github"
	"github.com/custodia-labs/ronin/internal/connectors/httpjson"
	"github.com/custodia-labs/ronin/internal/connectors/market"
	"github.com/custodia-labs/ronin/internal/connectors/onchain"
	"github.com/custodia-labs/ronin/internal/core/domain"
	"github.com/custodia-labs/ronin/internal/core/ports/driven"
	"github.com/custodia-labs/ronin/internal/core/services"
	"github.com/custodia-labs/ronin/internal/logger"
)

type wireOptions struct {
	noConfig  bool
	configDir string
}

// wire builds the service graph from resolved settings. The returned
// closer releases the history database and is never nil.
func wire(ctx context.Context, opts wireOptions) (*Services, func() error, error) {
	noop := func() error { return nil }

	var store driven.ConfigStore
	if opts.noConfig {
		store = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.configDir)
		if err != nil {
			return nil, noop, fmt.Errorf("open config: %w", err)
		}
		store = fileStore
	}

	settingsSvc := services.NewSettingsService(store)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, noop, fmt.Errorf("resolve settings: %w", err)
	}

	cat, live, err := loadPatterns(settings.PatternsFile)
	if err != nil {
		return nil, noop, fmt.Errorf("load patterns: %w", err)
	}

	collector, err := newCollector(ctx, settings)
	if err != nil {
		return nil, noop, err
	}

	svc := &Services{
		Catalogue: services.NewCatalogueService(cat),
		Settings:  settingsSvc,
		patterns:  live,
	}
	closers := []func() error{}
	if live != nil {
		closers = append(closers, live.Close)
	}

	var analysisOpts []services.AnalysisOption
	if settings.History.Enabled && !opts.noConfig {
		// History is best effort: a broken database must not block analysis.
		historyStore, err := sqlite.NewStore(opts.configDir)
		if err != nil {
			logger.Warn("history disabled: %v", err)
		} else {
			analysisOpts = append(analysisOpts, services.WithHistory(historyStore, settings.History.MaxRuns))
			svc.History = services.NewHistoryService(historyStore)
			closers = append(closers, historyStore.Close)
			logger.Debug("history at %s, keeping %d runs", historyStore.Path(), settings.History.MaxRuns)
		}
	}
	svc.Analysis = services.NewAnalysisService(collector, cat, analysisOpts...)

	logger.Debug("wired %d sources, %d patterns, config %q",
		len(collector.Sources()), cat.Len(), settingsSvc.ConfigPath())

	return svc, closeAll(closers), nil
}

// patternSource is the catalogue view wire needs.
type patternSource interface {
	driven.PatternCatalogue
	Len() int
}

// loadPatterns returns the built-in catalogue, or a reloadable one backed
// by path.
func loadPatterns(path string) (patternSource, *catalogue.Live, error) {
	if path == "" {
		return catalogue.Builtin(), nil, nil
	}
	live, err := catalogue.NewLive(path)
	if err != nil {
		return nil, nil, err
	}
	return live, live, nil
}

func closeAll(closers []func() error) func() error {
	return func() error {
		var errs []error
		for _, c := range closers {
			if err := c(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// newCollector registers the sources in their fixed order: onchain, github, market.
func newCollector(ctx context.Context, settings *domain.Settings) (*services.Collector, error) {
	fetcher := httpjson.New(httpjson.Config{
		Timeout:   settings.HTTP.Timeout,
		CacheTTL:  settings.HTTP.CacheTTL,
		CacheSize: settings.HTTP.CacheSize,
	})

	onchainSrc := onchain.New(fetcher, onchain.Config{
		DefiLlamaURL:   settings.OnChain.DefiLlamaURL,
		RPCURL:         settings.OnChain.RPCURL,
		MinProtocolTVL: settings.OnChain.MinProtocolTVL,
	})

	ghClient, err := github.NewClient(ctx, github.ClientConfig{
		Token:         settings.GitHub.Token,
		Timeout:       settings.HTTP.Timeout,
		QueryInterval: settings.GitHub.QueryInterval,
		CacheTTL:      settings.HTTP.CacheTTL,
		CacheSize:     settings.HTTP.CacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	githubSrc := github.New(ghClient, github.Config{
		Queries:    settings.GitHub.Queries,
		MaxQueries: settings.GitHub.MaxQueries,
		PerPage:    settings.GitHub.PerPage,
	})

	marketSrc := market.New(fetcher, market.Config{
		BaseURL:  settings.Market.CoinGeckoURL,
		Category: settings.Market.Category,
		PerPage:  settings.Market.PerPage,
	})

	return services.NewCollector(onchainSrc, githubSrc, marketSrc), nil
}
