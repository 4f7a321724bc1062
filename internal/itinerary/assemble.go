package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/tripgpt/planning-platform/internal/model"
)

// Assemble merges the normalized day sequence with independently
// obtained enrichment results into one itinerary record. Every
// enrichment field is optional; a missing one never blocks the others.
// A forecast without a location is dropped, since forecast points are
// meaningless without the coordinates they were fetched for.
func Assemble(
	destination string,
	days []model.Day,
	loc *model.Location,
	forecast []model.ForecastPoint,
	prices *model.PriceQuote,
	images []model.ImageRef,
) model.Itinerary {
	if loc == nil {
		forecast = nil
	}

	return model.Itinerary{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Destination: destination,
		Days:        days,
		Location:    loc,
		Forecast:    forecast,
		Prices:      prices,
		Images:      images,
		CreatedAt:   time.Now(),
	}
}
