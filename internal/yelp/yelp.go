// Package yelp provides a minimal Yelp Fusion business search client.
// Like the places client, the API key is optional: callers gate on
// Configured() and degrade to a manual-search fallback when it is absent.
package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production Yelp Fusion endpoint.
const DefaultBaseURL = "https://api.yelp.com"

// DefaultTimeout bounds every provider call.
const DefaultTimeout = 10 * time.Second

// Error represents a Yelp provider failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("yelp error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("yelp error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Business is one search match.
type Business struct {
	Name        string
	Rating      float64
	ReviewCount int
	URL         string
}

// Client calls the Yelp Fusion business search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. An empty key yields an unconfigured client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used in tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type searchResponse struct {
	Businesses []struct {
		Name        string  `json:"name"`
		Rating      float64 `json:"rating"`
		ReviewCount int     `json:"review_count"`
		URL         string  `json:"url"`
	} `json:"businesses"`
}

// SearchBusiness finds the best listing match for a business name and
// optional location. A nil business with nil error means confirmed absent.
func (c *Client) SearchBusiness(ctx context.Context, name, location string) (*Business, error) {
	if !c.Configured() {
		return nil, &Error{Message: "API key is not configured"}
	}

	params := url.Values{}
	params.Set("term", name)
	if location == "" {
		location = "United States"
	}
	params.Set("location", location)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v3/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, &Error{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &Error{Message: "failed to decode response", Cause: err}
	}
	if len(parsed.Businesses) == 0 {
		return nil, nil
	}

	best := parsed.Businesses[0]
	return &Business{
		Name:        best.Name,
		Rating:      best.Rating,
		ReviewCount: best.ReviewCount,
		URL:         best.URL,
	}, nil
}
