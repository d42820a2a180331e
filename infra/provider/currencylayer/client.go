// Package currencylayer is the HTTP client for the currencylayer-style
// rate provider. It is a pure I/O boundary: one call in, one typed result
// or error out. Caching and retries live elsewhere.
package currencylayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/amirasaad/exchange/internal/metrics"
	"github.com/amirasaad/exchange/pkg/config"
	"github.com/amirasaad/exchange/pkg/exchange/core"
	"github.com/shopspring/decimal"
)

// Client issues live-rate and currency-list requests against the provider.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
	stats      *metrics.ProviderStats
}

// liveResponse is the provider's /live payload. Quotes are keyed by the
// concatenated pair, e.g. "USDEUR".
type liveResponse struct {
	Success   bool                       `json:"success"`
	Terms     string                     `json:"terms"`
	Privacy   string                     `json:"privacy"`
	Timestamp int64                      `json:"timestamp"`
	Source    string                     `json:"source"`
	Quotes    map[string]decimal.Decimal `json:"quotes"`
	Error     *apiError                  `json:"error,omitempty"`
}

// listResponse is the provider's /list payload.
type listResponse struct {
	Success    bool              `json:"success"`
	Currencies map[string]string `json:"currencies"`
	Error      *apiError         `json:"error,omitempty"`
}

type apiError struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}

// New creates a provider client from config. The HTTP client timeout bounds
// every call; a timeout surfaces as a ProviderError like any other failure.
// stats may be nil.
func New(cfg *config.Provider, logger *slog.Logger, stats *metrics.ProviderStats) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   cfg.ApiUrl,
		accessKey: cfg.AccessKey,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
		stats:  stats,
	}
}

// FetchPairRate fetches the rate for a single currency pair via
// /live?source=S&currencies=T.
func (c *Client) FetchPairRate(ctx context.Context, source, target string) (*core.PairRate, error) {
	c.logger.Info("fetching exchange rate", "source", source, "target", target)

	query := url.Values{}
	query.Set("source", source)
	query.Set("currencies", target)

	var resp liveResponse
	if err := c.get(ctx, "live", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &core.ProviderError{Op: "live", Upstream: resp.Error.info(), Err: core.ErrProviderUnavailable}
	}

	rate, ok := resp.Quotes[source+target]
	if !ok {
		return nil, &core.RateNotFoundError{Source: source, Target: target}
	}

	return &core.PairRate{
		Source:    source,
		Target:    target,
		Rate:      rate,
		Timestamp: time.Now(),
	}, nil
}

// FetchAllRates fetches every rate quoted for the base currency via
// /live?source=S.
func (c *Client) FetchAllRates(ctx context.Context, source string) (*core.AllRates, error) {
	c.logger.Info("fetching all rates", "source", source)

	query := url.Values{}
	query.Set("source", source)

	var resp liveResponse
	if err := c.get(ctx, "live", query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &core.ProviderError{Op: "live", Upstream: resp.Error.info(), Err: core.ErrProviderUnavailable}
	}

	return &core.AllRates{
		Source:    source,
		Quotes:    resp.Quotes,
		Timestamp: time.Now(),
	}, nil
}

// FetchCurrencies fetches the supported-currency list via /list.
func (c *Client) FetchCurrencies(ctx context.Context) ([]core.Currency, error) {
	c.logger.Info("fetching supported currencies")

	var resp listResponse
	if err := c.get(ctx, "list", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &core.ProviderError{Op: "list", Upstream: resp.Error.info(), Err: core.ErrProviderUnavailable}
	}

	currencies := make([]core.Currency, 0, len(resp.Currencies))
	for code, name := range resp.Currencies {
		currencies = append(currencies, core.Currency{Code: code, Name: name})
	}
	return currencies, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	start := time.Now()
	err := c.doGet(ctx, path, query, out)
	c.observe(path, start, err)
	return err
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if c.accessKey != "" {
		query.Set("access_key", c.accessKey)
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &core.ProviderError{Op: path, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &core.ProviderError{Op: path, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &core.ProviderError{
			Op:       path,
			Upstream: string(body),
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &core.ProviderError{Op: path, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// observe records request count and latency at the transport level; a
// success=false payload still counts as a transport success.
func (c *Client) observe(endpoint string, start time.Time, err error) {
	if c.stats == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.stats.Requests.WithLabelValues(endpoint, outcome).Inc()
	c.stats.Duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (e *apiError) info() string {
	if e == nil {
		return ""
	}
	return e.Info
}
