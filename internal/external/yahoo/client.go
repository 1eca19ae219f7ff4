// Package yahoo fetches daily bar history from the Yahoo Finance chart
// API. All Yahoo calls go through this client.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/niveshlabs/quantmomentum/internal/contracts"
	"github.com/niveshlabs/quantmomentum/pkg/httputil"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
	"github.com/niveshlabs/quantmomentum/pkg/redis"
)

// DefaultBaseURL is the public chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily bars from the chart endpoint. Responses are
// cached so repeated backtest windows do not re-hit the API.
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	logger     *logger.Logger
	baseURL    string
	suffix     string
}

var _ contracts.BarProvider = (*Client)(nil)

// NewClient creates a new chart API client. suffix is appended to
// every symbol (".NS" for NSE listings); pass "" for none.
func NewClient(httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger, baseURL, suffix string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		logger:     log,
		baseURL:    baseURL,
		suffix:     suffix,
	}
}

// chartResponse is the subset of the chart API payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetDailyBars fetches the daily bars for symbol within [from, to].
// Bars with a missing close are dropped; the series is returned in
// ascending date order.
func (c *Client) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	cacheKey := redis.BarsKey(symbol, from.Format("2006-01-02"), to.Format("2006-01-02"))

	var cached []contracts.Bar
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	bars, err := c.fetchBars(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, bars, redis.TTLDaily); err != nil {
		c.logger.WithError(err).Warn("Bar cache write failed")
	}

	return bars, nil
}

func (c *Client) fetchBars(ctx context.Context, symbol string, from, to time.Time) ([]contracts.Bar, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, symbol, c.suffix, from.Unix(), to.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(bars),
	}).Debug("Fetched bars")

	return bars, nil
}

// parseChart decodes the chart payload into a clean bar series.
func parseChart(body []byte) ([]contracts.Bar, error) {
	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s: %s",
			parsed.Chart.Error.Code, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart API returned no result")
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart API returned no quote data")
	}
	quote := result.Indicators.Quote[0]

	bars := make([]contracts.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := contracts.Bar{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(a, b int) bool {
		return bars[a].Date.Before(bars[b].Date)
	})

	return bars, nil
}
