// Package service provides business logic for the trip-planning
// platform.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripgpt/planning-platform/internal/itinerary"
	"github.com/tripgpt/planning-platform/internal/llm"
	"github.com/tripgpt/planning-platform/internal/model"
	"github.com/tripgpt/planning-platform/internal/session"
	"github.com/tripgpt/planning-platform/internal/weather"
	"github.com/tripgpt/planning-platform/pkg/logger"
	"github.com/tripgpt/planning-platform/pkg/metrics"
)

// Geocoder resolves a place name to a location, nil on no match.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*model.Location, error)
}

// Forecaster fetches a 3-hour forecast series for a coordinate.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastPoint, error)
}

// ImageGenerator produces one image for a text prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*model.ImageRef, error)
}

// PriceFinder looks up flight offers between two IATA codes.
type PriceFinder interface {
	Search(ctx context.Context, origin, destination, departureDate string) (*model.PriceQuote, error)
}

// EventPublisher publishes planning events.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.PlanEvent) error
}

// PlannerService orchestrates one plan request: completion, itinerary
// normalization, enrichment, assembly, and session bookkeeping. All
// provider calls run sequentially; only a completion failure aborts the
// request, every other provider failure degrades to an absent field.
type PlannerService struct {
	sessions  *session.Service
	llmClient llm.Client
	geocoder  Geocoder
	forecast  Forecaster
	images    ImageGenerator
	prices    PriceFinder
	events    EventPublisher
	logger    *logger.Logger
}

// NewPlannerService creates a new planner service. Every dependency
// except sessions, llmClient, and logger may be nil; a nil provider is
// treated as permanently unavailable.
func NewPlannerService(
	sessions *session.Service,
	llmClient llm.Client,
	geocoder Geocoder,
	forecast Forecaster,
	images ImageGenerator,
	prices PriceFinder,
	events EventPublisher,
	log *logger.Logger,
) *PlannerService {
	return &PlannerService{
		sessions:  sessions,
		llmClient: llmClient,
		geocoder:  geocoder,
		forecast:  forecast,
		images:    images,
		prices:    prices,
		events:    events,
		logger:    log,
	}
}

// Plan processes one plan request within a session.
func (s *PlannerService) Plan(ctx context.Context, sessionID string, req *model.PlanRequest) (*model.PlanResponse, error) {
	start := time.Now()
	log := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
	)

	if err := s.sessions.AppendTurn(ctx, sessionID, model.RoleUser, req.Destination); err != nil {
		return nil, err
	}

	if s.llmClient == nil {
		return nil, s.abort(ctx, sessionID, req, fmt.Errorf("no completion provider configured"))
	}

	resp, err := s.llmClient.Complete(ctx, &llm.CompletionRequest{
		Model:       req.Model,
		System:      BuildSystemPrompt(req),
		Messages:    []llm.ChatMessage{{Role: string(model.RoleUser), Content: req.Destination}},
		MaxTokens:   1500,
		Temperature: 0.6,
	})
	if err != nil {
		log.Error("completion failed", zap.Error(err))
		metrics.PlanDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, s.abort(ctx, sessionID, req, fmt.Errorf("completion failed: %w", err))
	}
	metrics.RecordLLMTokens(resp.Model, resp.TokensIn, resp.TokensOut)

	days := itinerary.Normalize(resp.Content, req.Days)
	for _, day := range days {
		if day.Description == itinerary.PlaceholderDescription {
			metrics.PlaceholderDaysTotal.Inc()
		}
	}

	loc := s.geocode(ctx, log, req.Destination)
	forecast := s.forecastFor(ctx, log, loc, req.Days)
	images := s.generateImage(ctx, log, req.Destination)
	prices := s.lookupPrices(ctx, log, req)

	it := itinerary.Assemble(req.Destination, days, loc, forecast, prices, images)

	if err := s.sessions.AppendItinerary(ctx, sessionID, it); err != nil {
		return nil, err
	}
	if err := s.sessions.AppendTurn(ctx, sessionID, model.RoleAssistant, resp.Content); err != nil {
		return nil, err
	}

	s.publish(ctx, log, &model.PlanEvent{
		ID:          uuid.Must(uuid.NewV7()).String(),
		SessionID:   sessionID,
		ItineraryID: it.ID,
		Type:        model.EventTypeItineraryCreated,
		Destination: req.Destination,
		CreatedAt:   time.Now(),
	})

	metrics.ItinerariesTotal.Inc()
	metrics.PlanDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	log.Info("itinerary created",
		zap.String("itinerary_id", it.ID),
		zap.Bool("location", it.Location != nil),
		zap.Int("forecast_points", len(it.Forecast)),
		zap.Bool("prices", it.Prices != nil),
		zap.Int("images", len(it.Images)),
	)

	return &model.PlanResponse{
		Itinerary: &it,
		Reply:     resp.Content,
	}, nil
}

// abort records a failed plan: an error turn replaces the assistant
// reply and no itinerary is appended.
func (s *PlannerService) abort(ctx context.Context, sessionID string, req *model.PlanRequest, cause error) error {
	turn := fmt.Sprintf("Erreur: %v", cause)
	if err := s.sessions.AppendTurn(ctx, sessionID, model.RoleAssistant, turn); err != nil {
		s.logger.Error("failed to append error turn", zap.Error(err))
	}

	s.publish(ctx, s.logger, &model.PlanEvent{
		ID:          uuid.Must(uuid.NewV7()).String(),
		SessionID:   sessionID,
		Type:        model.EventTypePlanFailed,
		Destination: req.Destination,
		Reason:      cause.Error(),
		CreatedAt:   time.Now(),
	})

	return cause
}

func (s *PlannerService) geocode(ctx context.Context, log *logger.Logger, place string) *model.Location {
	if s.geocoder == nil {
		return nil
	}

	loc, err := s.geocoder.Geocode(ctx, place)
	metrics.RecordProviderCall("geocode", err)
	if err != nil {
		log.Warn("geocoding failed", zap.Error(err))
		return nil
	}
	return loc
}

func (s *PlannerService) forecastFor(ctx context.Context, log *logger.Logger, loc *model.Location, days int) []model.ForecastPoint {
	if s.forecast == nil || loc == nil {
		return nil
	}

	points, err := s.forecast.Forecast(ctx, loc.Lat, loc.Lon)
	metrics.RecordProviderCall("forecast", err)
	if err != nil {
		log.Warn("forecast failed", zap.Error(err))
		return nil
	}
	return weather.SampleDaily(points, days)
}

func (s *PlannerService) generateImage(ctx context.Context, log *logger.Logger, destination string) []model.ImageRef {
	if s.images == nil {
		return nil
	}

	ref, err := s.images.Generate(ctx, BuildImagePrompt(destination))
	metrics.RecordProviderCall("image", err)
	if err != nil {
		log.Warn("image generation failed", zap.Error(err))
		return nil
	}
	return []model.ImageRef{*ref}
}

func (s *PlannerService) lookupPrices(ctx context.Context, log *logger.Logger, req *model.PlanRequest) *model.PriceQuote {
	if s.prices == nil || req.OriginCode == "" || req.DestinationCode == "" {
		return nil
	}

	date := req.StartDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	quote, err := s.prices.Search(ctx, req.OriginCode, req.DestinationCode, date)
	metrics.RecordProviderCall("prices", err)
	if err != nil {
		log.Warn("price lookup failed", zap.Error(err))
		return nil
	}
	return quote
}

func (s *PlannerService) publish(ctx context.Context, log *logger.Logger, event *model.PlanEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Warn("event publish failed", zap.Error(err))
	}
}
