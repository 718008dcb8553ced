// Package fetch retrieves game records for a player from a lichess-style
// game export API. The core index never sees this layer; it only receives
// the fully-materialized PGN records the fetcher returns.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the game export endpoint used when none is configured.
const DefaultBaseURL = "https://lichess.org"

// DefaultResponseHeaderTimeout is the default timeout for receiving
// response headers.
const DefaultResponseHeaderTimeout = 30 * time.Second

// Client downloads a player's games as a PGN stream.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout for HTTP operations.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{
			Timeout: timeout,
		}
	}
}

// WithBaseURL sets the export API base URL (for self-hosted instances
// and tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// NewClient creates a new Client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 0, // No overall timeout - game exports can be large.
			Transport: &http.Transport{
				ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query bounds a game export request.
type Query struct {
	// Max limits the number of games returned. Zero means no limit.
	Max int

	// Since and Until bound the games by end time.
	Since time.Time
	Until time.Time

	// Perf restricts games to one time-control category
	// (e.g. "blitz", "rapid", "classical").
	Perf string

	// RatedOnly restricts the export to rated games.
	RatedOnly bool
}

// UserGames fetches games for a username and returns them as individual
// PGN records, newest first as served by the API.
func (c *Client) UserGames(ctx context.Context, username string, q Query) ([]string, error) {
	u, err := url.Parse(c.baseURL + "/api/games/user/" + url.PathEscape(username))
	if err != nil {
		return nil, fmt.Errorf("building export URL: %w", err)
	}

	params := url.Values{}
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}
	if !q.Since.IsZero() {
		params.Set("since", strconv.FormatInt(q.Since.UnixMilli(), 10))
	}
	if !q.Until.IsZero() {
		params.Set("until", strconv.FormatInt(q.Until.UnixMilli(), 10))
	}
	if q.Perf != "" {
		params.Set("perfType", q.Perf)
	}
	if q.RatedOnly {
		params.Set("rated", "true")
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/x-chess-pgn")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("user %q not found", username)
	}
	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the error message.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, msg)
	}

	games, err := SplitGames(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading PGN stream: %w", err)
	}
	return games, nil
}
