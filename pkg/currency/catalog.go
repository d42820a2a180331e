// Package currency holds the supported-currency catalog. The catalog is
// loaded once at startup and read by input validation for every request.
package currency

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/samber/lo"
)

// Lister is the slice of the provider client the catalog needs.
type Lister interface {
	FetchCurrencies(ctx context.Context) ([]core.Currency, error)
}

// FallbackCurrencies is installed when every load attempt fails. The
// catalog must never be empty: an empty catalog would reject every
// conversion request at validation.
var FallbackCurrencies = []core.Currency{
	{Code: "USD", Name: "US Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
	{Code: "JPY", Name: "Japanese Yen"},
}

type snapshot struct {
	currencies []core.Currency
	codes      map[string]struct{}
	fallback   bool
}

// Catalog is an immutable snapshot of supported currencies, replaced
// wholesale by Load and never mutated entry by entry.
type Catalog struct {
	lister      Lister
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger

	current atomic.Pointer[snapshot]
}

// NewCatalog creates an empty catalog. Call Load before serving traffic;
// until then every code reads as unsupported.
func NewCatalog(lister Lister, maxAttempts int, retryDelay time.Duration, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	c := &Catalog{
		lister:      lister,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      logger,
	}
	c.current.Store(&snapshot{codes: map[string]struct{}{}})
	return c
}

// Load fetches the currency list, retrying with a fixed delay between
// attempts. When every attempt fails it installs FallbackCurrencies
// instead of leaving the catalog empty. The error of the last attempt is
// recovered here and never propagates.
func (c *Catalog) Load(ctx context.Context) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		currencies, err := c.lister.FetchCurrencies(ctx)
		if err == nil && len(currencies) > 0 {
			c.install(currencies, false)
			c.logger.Info("loaded available currencies", "count", len(currencies), "attempt", attempt)
			return
		}
		if err == nil {
			err = core.ErrProviderUnavailable
		}
		lastErr = err
		c.logger.Error("failed to load currencies", "attempt", attempt, "error", err)

		if attempt < c.maxAttempts {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				c.logger.Warn("currency load cancelled, installing fallback set")
				c.install(FallbackCurrencies, true)
				return
			}
		}
	}

	c.logger.Error("all retries failed to load currencies, installing fallback set", "error", lastErr)
	c.install(FallbackCurrencies, true)
}

// Currencies returns the current snapshot.
func (c *Catalog) Currencies() []core.Currency {
	return c.current.Load().currencies
}

// SupportedCodes returns the set of valid currency codes.
func (c *Catalog) SupportedCodes() map[string]struct{} {
	return c.current.Load().codes
}

// IsSupported reports whether code is in the catalog.
func (c *Catalog) IsSupported(code string) bool {
	_, ok := c.current.Load().codes[code]
	return ok
}

// UsingFallback reports whether the fallback set is installed.
func (c *Catalog) UsingFallback() bool {
	return c.current.Load().fallback
}

func (c *Catalog) install(currencies []core.Currency, fallback bool) {
	codes := lo.SliceToMap(currencies, func(cur core.Currency) (string, struct{}) {
		return cur.Code, struct{}{}
	})
	c.current.Store(&snapshot{
		currencies: currencies,
		codes:      codes,
		fallback:   fallback,
	})
}
