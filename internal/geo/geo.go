// Package geo provides a geocoding client backed by the OpenWeather
// direct-geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tripgpt/planning-platform/internal/model"
)

// DefaultBaseURL is the OpenWeather geocoding API base URL.
const DefaultBaseURL = "http://api.openweathermap.org"

// Client is an OpenWeather geocoding client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new geocoding client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OpenWeather API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// geocodeResult mirrors one entry of the direct-geocoding response.
type geocodeResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Geocode resolves a place name to its best-match coordinate and
// canonical name. Returns nil without error when no match exists.
func (c *Client) Geocode(ctx context.Context, place string) (*model.Location, error) {
	u := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s",
		c.baseURL, url.QueryEscape(place), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding returned status %d", resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	return &model.Location{
		Name: results[0].Name,
		Lat:  results[0].Lat,
		Lon:  results[0].Lon,
	}, nil
}
