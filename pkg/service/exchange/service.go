// Package exchange is the service layer: it resolves rates through the
// cache and performs conversions with them.
package exchange

import (
	"context"
	"log/slog"

	"github.com/amirasaad/exchange/infra/cache"
	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/shopspring/decimal"
)

// RateProvider is the outbound port to the external rate provider.
type RateProvider interface {
	FetchPairRate(ctx context.Context, source, target string) (*core.PairRate, error)
	FetchAllRates(ctx context.Context, source string) (*core.AllRates, error)
}

// Service resolves exchange rates through two cache namespaces (single
// pairs and whole rate tables) and converts amounts with them. Provider
// errors propagate to the caller untouched.
type Service struct {
	provider  RateProvider
	pairs     *cache.Cache[*core.PairRate]
	allRates  *cache.Cache[*core.AllRates]
	converter *Converter
	logger    *slog.Logger
}

// New creates the exchange service.
func New(
	provider RateProvider,
	pairs *cache.Cache[*core.PairRate],
	allRates *cache.Cache[*core.AllRates],
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider:  provider,
		pairs:     pairs,
		allRates:  allRates,
		converter: NewConverter(),
		logger:    logger,
	}
}

// GetRate returns the rate for a single pair, fetching it on a cache miss.
func (s *Service) GetRate(ctx context.Context, source, target string) (*core.PairRate, error) {
	return s.pairs.Get(ctx, source+"-"+target, func(ctx context.Context) (*core.PairRate, error) {
		return s.provider.FetchPairRate(ctx, source, target)
	})
}

// GetAllRates returns every rate quoted for the base currency, fetching
// the table on a cache miss. The preloader drives this same path.
func (s *Service) GetAllRates(ctx context.Context, source string) (*core.AllRates, error) {
	return s.allRates.Get(ctx, source, func(ctx context.Context) (*core.AllRates, error) {
		return s.provider.FetchAllRates(ctx, source)
	})
}

// Convert converts amount from source to target at the current rate.
func (s *Service) Convert(ctx context.Context, source, target string, amount decimal.Decimal) (*core.ConversionResult, error) {
	if amount.IsNegative() {
		return nil, core.ErrInvalidAmount
	}
	rate, err := s.GetRate(ctx, source, target)
	if err != nil {
		return nil, err
	}
	return s.converter.ConvertSingle(rate, amount), nil
}

// ConvertMulti converts amount from source into every target currency.
// Any target without a resolvable rate fails the whole conversion.
func (s *Service) ConvertMulti(ctx context.Context, source string, targets []string, amount decimal.Decimal) (*core.MultiConversionResult, error) {
	if amount.IsNegative() {
		return nil, core.ErrInvalidAmount
	}
	rates, err := s.GetAllRates(ctx, source)
	if err != nil {
		return nil, err
	}
	return s.converter.ConvertMulti(rates, targets, amount)
}
