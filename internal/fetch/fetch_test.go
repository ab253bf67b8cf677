package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestPlaylistURL(t *testing.T) {
	c := NewClient(Options{Host: "example.org"})

	tests := []struct {
		station string
		offset  int
		want    string
	}{
		{"fip", 0, "https://example.org/fip/playlist/"},
		{"fip", 1, "https://example.org/fip/playlist/1"},
		{"uk/bbc6music", 6, "https://example.org/uk/bbc6music/playlist/6"},
	}

	for _, tt := range tests {
		if got := c.PlaylistURL(tt.station, tt.offset); got != tt.want {
			t.Errorf("PlaylistURL(%q, %d) = %q, want %q", tt.station, tt.offset, got, tt.want)
		}
	}
}

func TestFetchPlaylist(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>page</body></html>"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{UserAgent: "orbplaylist-test"})

	markup, err := c.FetchPlaylist(context.Background(), "fip", 3)
	if err != nil {
		t.Fatalf("FetchPlaylist failed: %v", err)
	}

	if gotPath != "/fip/playlist/3" {
		t.Errorf("unexpected request path: %s", gotPath)
	}
	if gotUA != "orbplaylist-test" {
		t.Errorf("unexpected user agent: %s", gotUA)
	}
	if !strings.Contains(markup, "page") {
		t.Errorf("unexpected markup: %q", markup)
	}
}

func TestFetchPlaylistErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})

	_, err := c.FetchPlaylist(context.Background(), "fip", 0)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("got %v, want ErrUnexpectedStatus", err)
	}
}

// newTestClient points a Client at the test server. PlaylistURL always
// speaks https, so the test transport rewrites requests to the server.
func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	opts.Host = "example.org"
	opts.Timeout = 5 * time.Second
	c := NewClient(opts)
	c.httpClient.Transport = &rewriteTransport{target: u}
	return c
}

type rewriteTransport struct {
	target *url.URL
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}
