// Package model defines data structures for the trip-planning platform.
package model

import (
	"time"
)

// Day represents one planned day of an itinerary.
type Day struct {
	// Number is the 1-based day number as written by the model. It is
	// taken verbatim from the generated text and may be non-contiguous
	// after truncation.
	Number int `json:"number"`

	// Title is the short day heading, defaulting to "Jour {number}".
	Title string `json:"title"`

	// Description is the newline-joined detail lines for the day, with
	// leading list markers stripped.
	Description string `json:"description"`
}

// Location is a geocoded place.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ForecastPoint is one sampled weather forecast entry.
type ForecastPoint struct {
	Timestamp time.Time `json:"timestamp"`
	TempC     float64   `json:"temp_c"`
	Condition string    `json:"condition"`
	Icon      string    `json:"icon"`
}

// FlightOffer is one priced flight option.
type FlightOffer struct {
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Airline     string  `json:"airline"`
	DepartureAt string  `json:"departure_at,omitempty"`
	ArrivalAt   string  `json:"arrival_at,omitempty"`
	Stops       int     `json:"stops"`
}

// PriceQuote is the result of one flight-price lookup.
type PriceQuote struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Currency    string        `json:"currency"`
	Offers      []FlightOffer `json:"offers"`
}

// ImageRef references one generated cover image.
type ImageRef struct {
	Prompt    string    `json:"prompt"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Itinerary is the enriched result of one plan request. It is immutable
// after construction; enrichment fields are nil/empty when the
// corresponding provider returned nothing.
type Itinerary struct {
	ID          string          `json:"id"`
	Destination string          `json:"destination"`
	Days        []Day           `json:"days"`
	Location    *Location       `json:"location,omitempty"`
	Forecast    []ForecastPoint `json:"forecast,omitempty"`
	Prices      *PriceQuote     `json:"prices,omitempty"`
	Images      []ImageRef      `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
