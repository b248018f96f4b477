package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vadimtrunov/reelview/internal/core"
	"github.com/vadimtrunov/reelview/internal/httpclient"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:5000/api"

const maxBodySize = 4 << 20

// Client is a client for the recommendation REST API.
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  *slog.Logger
}

// compile-time checks.
var (
	_ core.Catalog     = (*Client)(nil)
	_ core.ImageProber = (*Client)(nil)
)

// New creates a new API client.
func New(baseURL string, cfg httpclient.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return NewWithHTTPClient(baseURL, httpclient.New(cfg, logger), logger)
}

// NewWithHTTPClient creates an API client around an existing httpclient.Client.
func NewWithHTTPClient(baseURL string, hc *httpclient.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches the listing for kind. Unknown kinds fall back to the popular listing.
func (c *Client) List(ctx context.Context, kind core.Kind, query string) ([]core.ListingItem, error) {
	endpoint := ListURL(c.baseURL, kind, query)

	var resp listResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("list %s: response has no results", kind)
	}
	return *resp.Results, nil
}

// Detail fetches the full record for one title.
func (c *Client) Detail(ctx context.Context, id int) (*core.DetailItem, error) {
	var resp detailResponse
	if err := c.get(ctx, DetailURL(c.baseURL, id), &resp); err != nil {
		return nil, fmt.Errorf("get title %d: %w", id, err)
	}
	if resp.Movie == nil {
		return nil, fmt.Errorf("get title %d: response has no movie", id)
	}
	return resp.Movie, nil
}

// Recommendations fetches titles similar to id. A response without results
// yields an empty list rather than an error.
func (c *Client) Recommendations(ctx context.Context, id int) ([]core.ListingItem, error) {
	var resp listResponse
	if err := c.get(ctx, RecommendationsURL(c.baseURL, id), &resp); err != nil {
		return nil, fmt.Errorf("get recommendations for %d: %w", id, err)
	}
	if resp.Results == nil {
		return []core.ListingItem{}, nil
	}
	return *resp.Results, nil
}

// ProbeImage checks that an image URL is reachable with a HEAD request.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) error {
	resp, err := c.http.Head(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("probe image: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe image: HTTP %d from %s", resp.StatusCode, imageURL)
	}
	return nil
}

// ListURL builds the URL for a listing request.
func ListURL(baseURL string, kind core.Kind, query string) string {
	n := strconv.Itoa(ListingSize)
	switch kind {
	case core.KindSearch:
		return baseURL + "/search?q=" + url.QueryEscape(query) + "&n=" + n
	case core.KindTopRated:
		return baseURL + "/top-rated?n=" + n
	case core.KindRandom:
		return baseURL + "/random?n=" + n
	default:
		return baseURL + "/popular?n=" + n
	}
}

// DetailURL builds the URL for a detail request.
func DetailURL(baseURL string, id int) string {
	return fmt.Sprintf("%s/movie/%d", baseURL, id)
}

// RecommendationsURL builds the URL for a recommendations request.
func RecommendationsURL(baseURL string, id int) string {
	return fmt.Sprintf("%s/recommendations?id=%d&n=%d", baseURL, id, RecommendationSize)
}

// get performs a GET request and decodes the JSON body into out.
// The body is decoded whatever the status, because the API reports
// application errors as JSON with 4xx codes.
func (c *Client) get(ctx context.Context, endpoint string, out envelope) error {
	c.logger.Debug("api request", slog.String("url", endpoint))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}

	if msg := out.apiError(); msg != "" {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: msg}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected HTTP %d from %s", resp.StatusCode, endpoint)
	}
	return nil
}
