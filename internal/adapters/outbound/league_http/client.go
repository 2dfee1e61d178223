package league_http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/rubenaguilar/fantasy-trends/internal/core/roster"
	"github.com/rubenaguilar/fantasy-trends/internal/telemetry"
)

const playersPath = "/api/v3/players?x-lang=es"

// Client fetches roster data from the fantasy league API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

// FetchPlayers retrieves the full league roster. The response is either a
// bare array or a {"data"/"elements": [...]} envelope; both decode.
func (c *Client) FetchPlayers(ctx context.Context) ([]roster.Player, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := c.baseURL + playersPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("roster read: %w", err)
	}

	players, err := roster.UnmarshalPlayers(body)
	if err != nil {
		return nil, err
	}

	telemetry.Infof("league_http: fetched %d roster players (%s)", len(players), time.Since(start))
	return players, nil
}
