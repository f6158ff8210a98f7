package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrItemNotFound is returned when a lookup by identifier matches nothing.
var ErrItemNotFound = errors.New("media item not found")

const defaultTimeout = 15 * time.Second

// Item is one search result: the API returns each item as a data array
// (in practice a single element) plus preview links.
type Item struct {
	Data  []ItemData `json:"data"`
	Links []Link     `json:"links"`
}

type ItemData struct {
	NasaID       string   `json:"nasa_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Location     string   `json:"location,omitempty"`
	Photographer string   `json:"photographer,omitempty"`
	DateCreated  string   `json:"date_created,omitempty"`
}

type Link struct {
	Href string `json:"href"`
}

type collectionEnvelope struct {
	Collection struct {
		Items []Item `json:"items"`
	} `json:"collection"`
}

// Client talks to the public image-search API. Calls are rate limited so
// a burst of UI searches stays polite toward the shared endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a media search client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// Search runs a free-text image search with optional year bounds. An
// empty result list is a normal outcome, not an error.
func (c *Client) Search(ctx context.Context, query, yearStart, yearEnd string) ([]Item, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("media_type", "image")
	if yearStart != "" {
		q.Set("year_start", yearStart)
	}
	if yearEnd != "" {
		q.Set("year_end", yearEnd)
	}

	items, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Lookup fetches a single item's full metadata by its identifier.
func (c *Client) Lookup(ctx context.Context, nasaID string) (*Item, error) {
	q := url.Values{}
	q.Set("nasa_id", nasaID)

	items, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrItemNotFound
	}
	return &items[0], nil
}

func (c *Client) fetch(ctx context.Context, q url.Values) ([]Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media search returned status %d", resp.StatusCode)
	}

	var envelope collectionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	items := envelope.Collection.Items
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
