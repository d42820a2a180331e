// Package initializer wires the concrete dependencies: logger, metrics,
// provider client, cache namespaces, catalog, service, and preloader.
package initializer

import (
	"log/slog"

	"github.com/amirasaad/exchange/infra/cache"
	"github.com/amirasaad/exchange/infra/provider/currencylayer"
	"github.com/amirasaad/exchange/internal/metrics"
	"github.com/amirasaad/exchange/pkg/config"
	"github.com/amirasaad/exchange/pkg/currency"
	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/amirasaad/exchange/pkg/preload"
	exchangesvc "github.com/amirasaad/exchange/pkg/service/exchange"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
)

// Deps holds every constructed dependency the application runs on.
type Deps struct {
	Config    *config.App
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Client    *currencylayer.Client
	Catalog   *currency.Catalog
	Exchange  *exchangesvc.Service
	Preloader *preload.Preloader
}

// InitializeDependencies builds the full dependency graph from config.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(&cfg.Log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	client := currencylayer.New(&cfg.Provider, logger, m.ForProvider())

	pairCache := cache.New[*core.PairRate]("pair", cfg.RateCache, logger, m.ForCache("pair"))
	allRatesCache := cache.New[*core.AllRates]("all_rates", cfg.RateCache, logger, m.ForCache("all_rates"))

	catalog := currency.NewCatalog(client, cfg.Catalog.MaxAttempts, cfg.Catalog.RetryDelay, logger)

	svc := exchangesvc.New(client, pairCache, allRatesCache, logger)

	preloader := preload.New(
		svc,
		lo.Uniq(cfg.Preload.Currencies),
		cfg.Preload.Interval,
		logger,
		m.PreloadFailuresTotal,
	)

	return &Deps{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Client:    client,
		Catalog:   catalog,
		Exchange:  svc,
		Preloader: preloader,
	}, nil
}
