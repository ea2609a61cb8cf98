package tvdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Season describes one season of a series as reported by the service.
type Season struct {
	Number       int `json:"number"`
	EpisodeCount int `json:"episode_count"`
}

// seasonsResponse models the service's season listing payload.
type seasonsResponse struct {
	Data []Season `json:"data"`
}

// SeasonLister defines the lookup operation the spec source needs.
type SeasonLister interface {
	SeriesSeasons(ctx context.Context, seriesID int64) ([]Season, error)
}

// Client provides access to the episode metadata API.
type Client struct {
	token      string
	baseURL    string
	language   string
	httpClient *http.Client
}

var _ SeasonLister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a metadata API client.
func New(token, baseURL, language string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("api token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SeriesSeasons fetches the season listing for a series.
func (c *Client) SeriesSeasons(ctx context.Context, seriesID int64) ([]Season, error) {
	if seriesID <= 0 {
		return nil, errors.New("series id must be positive")
	}
	endpoint, err := url.Parse(c.baseURL + "/series/" + strconv.FormatInt(seriesID, 10) + "/seasons")
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if c.language != "" {
		params := url.Values{}
		params.Set("language", c.language)
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("season listing returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload seasonsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode season listing: %w", err)
	}
	return payload.Data, nil
}
