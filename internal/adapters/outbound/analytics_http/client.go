package analytics_http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

const (
	requestTimeout = 30 * time.Second
	// Browser-ish UA: the analytics site serves a stripped page to
	// obvious bots.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client fetches the market analytics page. One request per 30s is plenty:
// the site updates its values once a day.
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(30*time.Second), 1),
	}
}

// FetchMarketHTML performs one GET against the analytics page and returns
// the raw document. Parsing is the trend store's job.
func (c *Client) FetchMarketHTML(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("market page fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("market page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("market page read: %w", err)
	}

	telemetry.Infof("analytics_http: GET %s -> %d (%d bytes, %s)",
		c.url, resp.StatusCode, len(body), time.Since(start))
	return string(body), nil
}
