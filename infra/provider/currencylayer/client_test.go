package currencylayer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/exchange/internal/metrics"
	"github.com/amirasaad/exchange/pkg/config"
	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(&config.Provider{
		ApiUrl:      server.URL,
		AccessKey:   "test-key",
		HTTPTimeout: 2 * time.Second,
	}, logger, nil)
}

func TestClient_FetchPairRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/live", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("source"))
		assert.Equal(t, "EUR", r.URL.Query().Get("currencies"))
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"source":"USD","quotes":{"USDEUR":0.85}}`))
	})

	rate, err := client.FetchPairRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "USD", rate.Source)
	assert.Equal(t, "EUR", rate.Target)
	assert.Equal(t, "0.85", rate.Rate.String())
	assert.WithinDuration(t, time.Now(), rate.Timestamp, time.Second)
}

func TestClient_FetchPairRate_MissingQuote(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"quotes":{"USDEUR":0.85}}`))
	})

	_, err := client.FetchPairRate(context.Background(), "USD", "JPY")
	require.Error(t, err)

	var notFound *core.RateNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "USD", notFound.Source)
	assert.Equal(t, "JPY", notFound.Target)
	assert.ErrorIs(t, err, core.ErrRateNotFound)
}

func TestClient_FetchPairRate_ProviderFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":104,"info":"usage limit reached"}}`))
	})

	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, core.IsProviderError(err))
	assert.Contains(t, err.Error(), "usage limit reached")
}

func TestClient_FetchPairRate_HTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, core.IsProviderError(err))
}

func TestClient_FetchPairRate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := New(&config.Provider{
		ApiUrl:      server.URL,
		HTTPTimeout: 20 * time.Millisecond,
	}, logger, nil)

	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")
	require.Error(t, err)
	assert.True(t, core.IsProviderError(err), "a timeout must surface as a provider error")
}

func TestClient_FetchAllRates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/live", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("source"))
		assert.Empty(t, r.URL.Query().Get("currencies"))

		_, _ = w.Write([]byte(`{"success":true,"source":"USD","quotes":{"USDEUR":0.85,"USDGBP":0.73,"USDJPY":148.11}}`))
	})

	rates, err := client.FetchAllRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", rates.Source)
	assert.Len(t, rates.Quotes, 3)

	rate, ok := rates.Lookup("GBP")
	require.True(t, ok)
	assert.Equal(t, "0.73", rate.String())
}

func TestClient_FetchCurrencies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"currencies":{"USD":"US Dollar","EUR":"Euro"}}`))
	})

	currencies, err := client.FetchCurrencies(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Currency{
		{Code: "USD", Name: "US Dollar"},
		{Code: "EUR", Name: "Euro"},
	}, currencies)
}

func TestClient_RecordsProviderMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"source":"USD","quotes":{"USDEUR":0.85}}`))
	}))
	t.Cleanup(server.Close)

	m := metrics.New(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := New(&config.Provider{
		ApiUrl:      server.URL,
		HTTPTimeout: 2 * time.Second,
	}, logger, m.ForProvider())

	_, err := client.FetchAllRates(context.Background(), "USD")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("live", "success")))
}

func TestClient_FetchCurrencies_ProviderFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	_, err := client.FetchCurrencies(context.Background())
	require.Error(t, err)
	assert.True(t, core.IsProviderError(err))
}
