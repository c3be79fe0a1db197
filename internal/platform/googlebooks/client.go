package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://www.googleapis.com/books/v1/volumes"
	defaultMaxRetries = 2
	defaultBaseDelay  = time.Second
	// Cache entries are fresh for five minutes and swept once they are
	// older than twice that.
	cacheTTL = 5 * time.Minute
)

// SearchResponse matches the volumes API response body.
type SearchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is a single raw catalog item. It is held only for the duration
// of a search session and never persisted as-is.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Description   string   `json:"description"`
	PageCount     int      `json:"pageCount"`
	PublishedDate string   `json:"publishedDate"`
	Categories    []string `json:"categories"`
	ImageLinks    *struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	} `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// SearchResult is the successful outcome of a search.
type SearchResult struct {
	Items []Volume
}

type cacheEntry struct {
	items   []Volume
	fetched time.Time
}

// Client queries the Google Books volumes API. It owns its result cache
// and retry policy so that independent instances stay isolated; callers
// share one instance per process.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithClock replaces the wall clock, used by tests to age cache entries.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSleep replaces the backoff sleep, used by tests to observe delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) { c.sleep = sleep }
}

// NewClient returns a catalog client. The API key is optional: without it
// the shared public quota applies, which is lower but valid.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		cache:      make(map[string]cacheEntry),
		now:        time.Now,
	}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns catalog volumes matching the free-text query. An empty or
// whitespace-only query short-circuits to an empty result without any
// network call. Results are cached per normalized query for five minutes.
// Only HTTP 429 is retried (up to 2 retries, backoff 1s then 2s); every
// other failure is surfaced immediately as a *SearchError.
func (c *Client) Search(ctx context.Context, query string, maxResults int) (SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return SearchResult{}, nil
	}
	if maxResults <= 0 || maxResults > 40 {
		maxResults = 20
	}

	key := cacheKey(query, maxResults)
	if items, ok := c.cached(key); ok {
		return SearchResult{Items: items}, nil
	}

	resp, err := c.fetchWithRetry(ctx, c.searchURL(query, maxResults))
	if err != nil {
		return SearchResult{}, err
	}
	defer resp.Body.Close()

	var body SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return SearchResult{}, &SearchError{Kind: TransportError, Err: fmt.Errorf("decode response: %w", err)}
	}

	// Absence of items is a valid empty result, not an error.
	items := body.Items
	if items == nil {
		items = []Volume{}
	}

	c.store(key, items)
	c.sweep()

	return SearchResult{Items: items}, nil
}

// CacheSize reports the number of live cache entries.
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func cacheKey(query string, maxResults int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(query), maxResults)
}

func (c *Client) cached(key string) ([]Volume, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || c.now().Sub(entry.fetched) >= cacheTTL {
		return nil, false
	}
	// Hand out a copy so callers mutating the result cannot corrupt the
	// cached entry for the rest of its freshness window.
	items := make([]Volume, len(entry.items))
	copy(items, entry.items)
	return items, true
}

func (c *Client) store(key string, items []Volume) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]Volume, len(items))
	copy(kept, items)
	c.cache[key] = cacheEntry{items: kept, fetched: c.now()}
}

// sweep drops entries older than twice the freshness window. It runs
// opportunistically after every successful search instead of on a timer,
// which bounds memory growth over a long session.
func (c *Client) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.cache {
		if now.Sub(entry.fetched) > 2*cacheTTL {
			delete(c.cache, key)
		}
	}
}

func (c *Client) searchURL(query string, maxResults int) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	return c.baseURL + "?" + params.Encode()
}

// fetchWithRetry performs the request in a strict bounded loop: at most
// maxRetries+1 attempts, retrying only on 429 with exponential backoff
// starting at baseDelay. The last failing response is classified and
// returned; there is no extra request after the loop.
func (c *Client) fetchWithRetry(ctx context.Context, u string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &SearchError{Kind: TransportError, Err: err}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, &SearchError{Kind: TransportError, Err: err}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &SearchError{Kind: TransportError, Err: err}
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < c.maxRetries {
				// Backoff: 1s, 2s, 4s...
				delay := c.baseDelay * (1 << uint(attempt))
				if err := c.sleep(ctx, delay); err != nil {
					return nil, &SearchError{Kind: TransportError, Err: err}
				}
				continue
			}
			return nil, &SearchError{Kind: RateLimited, StatusCode: resp.StatusCode}
		}
		if resp.StatusCode >= 500 {
			return nil, &SearchError{Kind: ServerError, StatusCode: resp.StatusCode}
		}
		return nil, &SearchError{Kind: ClientError, StatusCode: resp.StatusCode}
	}
}
