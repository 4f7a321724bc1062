// Package weather provides a forecast client backed by the OpenWeather
// 5-day / 3-hour forecast API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tripgpt/planning-platform/internal/model"
)

// DefaultBaseURL is the OpenWeather forecast API base URL.
const DefaultBaseURL = "https://api.openweathermap.org"

// pointsPerDay is the number of 3-hour forecast points per calendar day.
const pointsPerDay = 8

// Client is an OpenWeather forecast client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new forecast client.
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

// forecastResponse mirrors the fields consumed from the forecast API.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// Forecast fetches the 3-hour forecast series for a coordinate, in
// metric units with French condition text.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastPoint, error) {
	u := fmt.Sprintf("%s/data/2.5/forecast?lat=%f&lon=%f&appid=%s&units=metric&lang=fr",
		c.baseURL, lat, lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	points := make([]model.ForecastPoint, 0, len(payload.List))
	for _, entry := range payload.List {
		point := model.ForecastPoint{
			Timestamp: time.Unix(entry.Dt, 0).UTC(),
			TempC:     entry.Main.Temp,
		}
		if len(entry.Weather) > 0 {
			point.Condition = entry.Weather[0].Description
			point.Icon = entry.Weather[0].Icon
		}
		points = append(points, point)
	}

	return points, nil
}

// SampleDaily reduces a 3-hour forecast series to one point per
// calendar day by taking every eighth entry, up to days points.
func SampleDaily(points []model.ForecastPoint, days int) []model.ForecastPoint {
	var sampled []model.ForecastPoint
	for i := 0; i < days; i++ {
		idx := i * pointsPerDay
		if idx >= len(points) {
			break
		}
		sampled = append(sampled, points[idx])
	}
	return sampled
}
