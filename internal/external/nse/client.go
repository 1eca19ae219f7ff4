// Package nse scrapes index constituent lists. All NSE page calls go
// through this client.
package nse

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/niveshlabs/quantmomentum/pkg/httputil"
	"github.com/niveshlabs/quantmomentum/pkg/logger"
)

// DefaultBaseURL is the public index pages host.
const DefaultBaseURL = "https://www.niftyindices.com"

// indexPaths maps index names to their constituents page.
var indexPaths = map[string]string{
	"NIFTY50":  "/indices/equity/broad-based-indices/nifty-50",
	"NIFTY100": "/indices/equity/broad-based-indices/nifty-100",
	"NIFTY500": "/indices/equity/broad-based-indices/nifty-500",
}

// Client fetches index membership pages and extracts constituent
// symbols from the holdings table.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new constituents client.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// FetchConstituents scrapes the member symbols of an index. The result
// is deduplicated and sorted.
func (c *Client) FetchConstituents(ctx context.Context, index string) ([]string, error) {
	path, ok := indexPaths[strings.ToUpper(index)]
	if !ok {
		return nil, fmt.Errorf("unknown index: %s", index)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("constituents request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page failed: %w", err)
	}

	symbols := parseConstituents(doc)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no constituents found for %s", index)
	}

	c.logger.WithFields(map[string]interface{}{
		"index": index,
		"count": len(symbols),
	}).Info("Fetched index constituents")

	return symbols, nil
}

// parseConstituents extracts symbols from the holdings table. The
// symbol sits in the first cell of each body row.
func parseConstituents(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var symbols []string

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		symbol := strings.TrimSpace(row.Find("td").First().Text())
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	})

	sort.Strings(symbols)
	return symbols
}
