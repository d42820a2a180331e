package exchange

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/exchange/infra/cache"
	"github.com/amirasaad/exchange/pkg/config"
	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRateProvider is a mock implementation for testing
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchPairRate(ctx context.Context, source, target string) (*core.PairRate, error) {
	args := m.Called(ctx, source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.PairRate), args.Error(1)
}

func (m *MockRateProvider) FetchAllRates(ctx context.Context, source string) (*core.AllRates, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.AllRates), args.Error(1)
}

func newTestService(t *testing.T, provider RateProvider) *Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.RateCache{TTL: time.Minute, MaxEntries: 100}
	pairs := cache.New[*core.PairRate]("pair", cfg, logger, nil)
	allRates := cache.New[*core.AllRates]("all_rates", cfg, logger, nil)
	return New(provider, pairs, allRates, logger)
}

func TestService_GetRate_CachesResult(t *testing.T) {
	provider := &MockRateProvider{}
	provider.On("FetchPairRate", mock.Anything, "USD", "EUR").Return(&core.PairRate{
		Source:    "USD",
		Target:    "EUR",
		Rate:      decimal.RequireFromString("0.85"),
		Timestamp: time.Now(),
	}, nil).Once()

	svc := newTestService(t, provider)
	ctx := context.Background()

	first, err := svc.GetRate(ctx, "USD", "EUR")
	require.NoError(t, err)

	second, err := svc.GetRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	provider.AssertExpectations(t)
	provider.AssertNumberOfCalls(t, "FetchPairRate", 1)
}

func TestService_GetRate_ProviderErrorPropagates(t *testing.T) {
	provider := &MockRateProvider{}
	providerErr := &core.ProviderError{Op: "live", Err: core.ErrProviderUnavailable}
	provider.On("FetchPairRate", mock.Anything, "USD", "EUR").Return(nil, providerErr)

	svc := newTestService(t, provider)

	_, err := svc.GetRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, core.IsProviderError(err))

	// The error was not cached; the next call fetches again.
	_, err = svc.GetRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	provider.AssertNumberOfCalls(t, "FetchPairRate", 2)
}

func TestService_GetAllRates_SharedWithPreloadPath(t *testing.T) {
	provider := &MockRateProvider{}
	provider.On("FetchAllRates", mock.Anything, "USD").Return(&core.AllRates{
		Source: "USD",
		Quotes: core.RateTable{
			"USDEUR": decimal.RequireFromString("0.85"),
		},
		Timestamp: time.Now(),
	}, nil).Once()

	svc := newTestService(t, provider)
	ctx := context.Background()

	// First call fetches; a second caller, regardless of who it is,
	// reuses the same cached table.
	_, err := svc.GetAllRates(ctx, "USD")
	require.NoError(t, err)
	_, err = svc.GetAllRates(ctx, "USD")
	require.NoError(t, err)

	provider.AssertNumberOfCalls(t, "FetchAllRates", 1)
}

func TestService_Convert(t *testing.T) {
	provider := &MockRateProvider{}
	provider.On("FetchPairRate", mock.Anything, "USD", "EUR").Return(&core.PairRate{
		Source:    "USD",
		Target:    "EUR",
		Rate:      decimal.RequireFromString("1.5"),
		Timestamp: time.Now(),
	}, nil)

	svc := newTestService(t, provider)

	result, err := svc.Convert(context.Background(), "USD", "EUR", decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, "150.000000", result.ConvertedAmount.StringFixed(core.ConversionScale))
}

func TestService_Convert_NegativeAmountRejected(t *testing.T) {
	provider := &MockRateProvider{}
	svc := newTestService(t, provider)

	_, err := svc.Convert(context.Background(), "USD", "EUR", decimal.RequireFromString("-1"))
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	provider.AssertNotCalled(t, "FetchPairRate")
}

func TestService_ConvertMulti(t *testing.T) {
	provider := &MockRateProvider{}
	provider.On("FetchAllRates", mock.Anything, "USD").Return(&core.AllRates{
		Source: "USD",
		Quotes: core.RateTable{
			"USDEUR": decimal.RequireFromString("0.85"),
			"USDGBP": decimal.RequireFromString("0.73"),
		},
		Timestamp: time.Now(),
	}, nil)

	svc := newTestService(t, provider)

	result, err := svc.ConvertMulti(context.Background(), "USD", []string{"EUR", "GBP"}, decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, "85.000000", result.Conversions["EUR"].StringFixed(core.ConversionScale))
	assert.Equal(t, "73.000000", result.Conversions["GBP"].StringFixed(core.ConversionScale))
}

func TestService_ConvertMulti_MissingRate(t *testing.T) {
	provider := &MockRateProvider{}
	provider.On("FetchAllRates", mock.Anything, "USD").Return(&core.AllRates{
		Source: "USD",
		Quotes: core.RateTable{
			"USDEUR": decimal.RequireFromString("0.85"),
		},
		Timestamp: time.Now(),
	}, nil)

	svc := newTestService(t, provider)

	_, err := svc.ConvertMulti(context.Background(), "USD", []string{"EUR", "JPY"}, decimal.RequireFromString("100"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRateNotFound)
}
