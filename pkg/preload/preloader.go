// Package preload keeps the all-rates cache warm for a configured set of
// base currencies so steady-state requests never wait on the provider.
package preload

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/prometheus/client_golang/prometheus"
)

// RateSource is the cache-backed lookup the preloader drives. It is the
// same path user requests take, so a preload tick and a concurrent request
// for the same currency coalesce into one provider call.
type RateSource interface {
	GetAllRates(ctx context.Context, source string) (*core.AllRates, error)
}

// Preloader warms the configured base currencies once at startup and then
// on a fixed interval.
type Preloader struct {
	source     RateSource
	currencies []string
	interval   time.Duration
	logger     *slog.Logger
	failures   prometheus.Counter
}

// New creates a preloader. failures may be nil.
func New(source RateSource, currencies []string, interval time.Duration, logger *slog.Logger, failures prometheus.Counter) *Preloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preloader{
		source:     source,
		currencies: currencies,
		interval:   interval,
		logger:     logger,
		failures:   failures,
	}
}

// Run ticks until ctx is cancelled, starting with an immediate tick. It is
// meant to be launched on its own goroutine.
func (p *Preloader) Run(ctx context.Context) {
	p.Tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("preloader stopped")
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick preloads every configured currency once. A failure for one currency
// is logged and does not stop the rest; the preloader has no caller to
// propagate errors to.
func (p *Preloader) Tick(ctx context.Context) {
	p.logger.Info("starting preload of exchange rates", "currencies", p.currencies)

	for _, currency := range p.currencies {
		rates, err := p.source.GetAllRates(ctx, currency)
		if err != nil {
			p.logger.Error("failed to preload rates", "currency", currency, "error", err)
			if p.failures != nil {
				p.failures.Inc()
			}
			continue
		}
		p.logger.Info("preloaded rates", "currency", currency, "quotes", len(rates.Quotes), "timestamp", rates.Timestamp)
	}
}
