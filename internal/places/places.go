// Package places provides a Google-style geocoding and places client.
// The API key is optional by design: an unconfigured client is a first-class,
// user-visible degraded state, and callers gate on Configured() rather than
// handling an error.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production maps API endpoint.
const DefaultBaseURL = "https://maps.googleapis.com"

// DefaultTimeout bounds every provider call.
const DefaultTimeout = 10 * time.Second

// Error represents a places provider failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("places error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("places error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client calls the geocoding and places endpoints.
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

// Coordinates is a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one nearby-search result.
type Place struct {
	PlaceID     string
	Name        string
	Rating      float64
	ReviewCount int
	Location    Coordinates
}

// Details holds the per-place fields the analyzers consume.
type Details struct {
	Website string
	Phone   string
	Types   []string
}

// Listing is a text-search presence result.
type Listing struct {
	Name        string
	Rating      float64
	ReviewCount int
	URL         string
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string  `json:"place_id"`
		Name     string  `json:"name"`
		Rating   float64 `json:"rating"`
		Ratings  int     `json:"user_ratings_total"`
		Geometry struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Website string   `json:"website"`
		Phone   string   `json:"formatted_phone_number"`
		Types   []string `json:"types"`
	} `json:"result"`
}

type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name    string  `json:"name"`
		Rating  float64 `json:"rating"`
		Ratings int     `json:"user_ratings_total"`
		PlaceID string  `json:"place_id"`
	} `json:"results"`
}

// Geocode resolves an address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return nil, &Error{Message: fmt.Sprintf("geocoding returned status %s", resp.Status)}
	}
	loc := resp.Results[0].Geometry.Location
	return &loc, nil
}

// NearbySearch returns businesses of placeType within radiusMeters of coords.
// Zero results is a valid empty answer, not an error.
func (c *Client) NearbySearch(ctx context.Context, coords Coordinates, radiusMeters int, placeType string) ([]Place, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", coords.Lat, coords.Lng))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", placeType)

	var resp nearbyResponse
	if err := c.get(ctx, "/maps/api/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, &Error{Message: fmt.Sprintf("nearby search returned status %s", resp.Status)}
	}

	results := make([]Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, Place{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Rating:      r.Rating,
			ReviewCount: r.Ratings,
			Location:    r.Geometry.Location,
		})
	}
	return results, nil
}

// PlaceDetails fetches the website, phone, and categories for a place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*Details, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "website,formatted_phone_number,types")

	var resp detailsResponse
	if err := c.get(ctx, "/maps/api/place/details/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" {
		return nil, &Error{Message: fmt.Sprintf("place details returned status %s", resp.Status)}
	}
	return &Details{
		Website: resp.Result.Website,
		Phone:   resp.Result.Phone,
		Types:   resp.Result.Types,
	}, nil
}

// FindListing searches for a business listing by name and optional address.
// A nil listing with nil error means the business was confirmed absent.
func (c *Client) FindListing(ctx context.Context, name, address string) (*Listing, error) {
	query := name
	if address != "" {
		query += " " + address
	}
	params := url.Values{}
	params.Set("query", query)

	var resp textSearchResponse
	if err := c.get(ctx, "/maps/api/place/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, &Error{Message: fmt.Sprintf("text search returned status %s", resp.Status)}
	}

	best := resp.Results[0]
	return &Listing{
		Name:        best.Name,
		Rating:      best.Rating,
		ReviewCount: best.Ratings,
		URL:         "https://www.google.com/maps/place/?q=place_id:" + url.QueryEscape(best.PlaceID),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if !c.Configured() {
		return &Error{Message: "API key is not configured"}
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return &Error{Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &Error{Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: "failed to decode response", Cause: err}
	}
	return nil
}
