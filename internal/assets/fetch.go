package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrEmptyURL is returned for a blank asset URL.
var ErrEmptyURL = errors.New("empty asset url")

// maxAssetSize bounds a single download.
const maxAssetSize = 256 << 20

// Fetcher reads asset bytes from the filesystem or over HTTP.
// Concurrent requests for the same URL share one read.
type Fetcher struct {
	client *http.Client
	cache  *Cache
	group  singleflight.Group
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
		cache:  NewCache(DefaultCacheBudget),
	}
}

// Cache exposes the byte cache.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// Fetch returns the bytes behind rawURL. Accepted forms are plain paths,
// file:// URLs and http(s):// URLs.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if data, ok := f.cache.Get(rawURL); ok {
		return data, nil
	}

	v, err, _ := f.group.Do(rawURL, func() (any, error) {
		data, err := f.read(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		f.cache.Set(rawURL, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (f *Fetcher) read(ctx context.Context, rawURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path, including Windows drive letters.
		return readFile(rawURL)
	}

	switch u.Scheme {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return f.get(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return data, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
