// Package fetch retrieves playlist pages from the station site.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ErrUnexpectedStatus indicates an HTTP response with a non-success status.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Options configures a Client.
type Options struct {
	Host      string
	Timeout   time.Duration
	UserAgent string
	// Render fetches through headless Chrome instead of a plain GET.
	Render bool
}

// Client fetches playlist pages. It owns a constructed http.Client with an
// explicit timeout; there is no lazy initialization.
type Client struct {
	httpClient *http.Client
	host       string
	userAgent  string
	render     bool
}

// NewClient creates a client for the given site.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		host:       opts.Host,
		userAgent:  opts.UserAgent,
		render:     opts.Render,
	}
}

// PlaylistURL returns the page URL for a station's playlist, offset days in
// the past. Offset 0 maps to the bare playlist page.
func (c *Client) PlaylistURL(station string, offset int) string {
	url := "https://" + c.host + "/" + station + "/playlist/"
	if offset > 0 {
		url += strconv.Itoa(offset)
	}
	return url
}

// FetchPlaylist retrieves the raw markup of a station's playlist page.
func (c *Client) FetchPlaylist(ctx context.Context, station string, offset int) (string, error) {
	url := c.PlaylistURL(station, offset)

	if c.render {
		return fetchRendered(ctx, url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	return string(data), nil
}
