package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgpt/planning-platform/internal/llm"
	"github.com/tripgpt/planning-platform/internal/model"
	"github.com/tripgpt/planning-platform/internal/service"
	"github.com/tripgpt/planning-platform/internal/session"
	"github.com/tripgpt/planning-platform/pkg/logger"
)

const sampleCompletion = "Jour 1: Arrivée\n- Aéroport\n- Hôtel\nJour 2: Vieille ville\n- Musée\n- Déjeuner"

type fakeLLM struct {
	content string
	err     error
	lastReq *llm.CompletionRequest
}

func (f *fakeLLM) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, Model: "fake-model"}, nil
}

func (f *fakeLLM) Name() string     { return "fake" }
func (f *fakeLLM) Models() []string { return []string{"fake-model"} }

type fakeGeocoder struct {
	loc   *model.Location
	err   error
	calls int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (*model.Location, error) {
	f.calls++
	return f.loc, f.err
}

type fakeForecaster struct {
	points []model.ForecastPoint
	err    error
	calls  int
}

func (f *fakeForecaster) Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastPoint, error) {
	f.calls++
	return f.points, f.err
}

type fakeImages struct {
	ref *model.ImageRef
	err error
}

func (f *fakeImages) Generate(ctx context.Context, prompt string) (*model.ImageRef, error) {
	if f.err != nil {
		return nil, f.err
	}
	ref := *f.ref
	ref.Prompt = prompt
	return &ref, nil
}

type fakePrices struct {
	quote *model.PriceQuote
	err   error
	calls int
}

func (f *fakePrices) Search(ctx context.Context, origin, destination, departureDate string) (*model.PriceQuote, error) {
	f.calls++
	return f.quote, f.err
}

type eventRecorder struct {
	events []model.PlanEvent
}

func (r *eventRecorder) Publish(ctx context.Context, event *model.PlanEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func newSessions(t *testing.T) (*session.Service, string) {
	log, err := logger.New("error")
	require.NoError(t, err)
	sessions := session.NewService(log)
	sess, err := sessions.Create(context.Background(), &model.CreateSessionRequest{})
	require.NoError(t, err)
	return sessions, sess.ID
}

func testLogger(t *testing.T) *logger.Logger {
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

// series8 builds n*8 forecast points so daily sampling has material.
func series8(n int) []model.ForecastPoint {
	points := make([]model.ForecastPoint, n*8)
	for i := range points {
		points[i] = model.ForecastPoint{TempC: float64(i)}
	}
	return points
}

func TestPlan_FullEnrichment(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: sampleCompletion}
	geocoder := &fakeGeocoder{loc: &model.Location{Name: "Porto", Lat: 41.15, Lon: -8.61}}
	forecaster := &fakeForecaster{points: series8(5)}
	images := &fakeImages{ref: &model.ImageRef{URL: "https://img.example/cover.png"}}
	prices := &fakePrices{quote: &model.PriceQuote{Origin: "CDG", Destination: "OPO", Currency: "EUR"}}
	recorder := &eventRecorder{}

	planner := service.NewPlannerService(sessions, completer, geocoder, forecaster, images, prices, recorder, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{
		Destination:     "Porto",
		Days:            2,
		Budget:          "Moyen",
		Interests:       []string{"Histoire", "Gastronomie"},
		OriginCode:      "CDG",
		DestinationCode: "OPO",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Itinerary)

	it := resp.Itinerary
	require.Len(t, it.Days, 2)
	assert.Equal(t, "Arrivée", it.Days[0].Title)
	assert.Equal(t, "Aéroport\nHôtel\n", it.Days[0].Description)
	require.NotNil(t, it.Location)
	assert.Equal(t, "Porto", it.Location.Name)
	assert.Len(t, it.Forecast, 2)
	require.NotNil(t, it.Prices)
	assert.Equal(t, "EUR", it.Prices.Currency)
	require.Len(t, it.Images, 1)

	// The system prompt carries the request parameters.
	require.NotNil(t, completer.lastReq)
	assert.Contains(t, completer.lastReq.System, "2 jours")
	assert.Contains(t, completer.lastReq.System, "Moyen")
	assert.Contains(t, completer.lastReq.System, "Histoire, Gastronomie")

	// Session bookkeeping: user turn, assistant turn, current itinerary.
	sess, err := sessions.Get(context.Background(), sessID)
	require.NoError(t, err)
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, model.RoleUser, sess.Turns[0].Role)
	assert.Equal(t, "Porto", sess.Turns[0].Content)
	assert.Equal(t, model.RoleAssistant, sess.Turns[1].Role)
	assert.Equal(t, 0, sess.Current)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, model.EventTypeItineraryCreated, recorder.events[0].Type)
	assert.Equal(t, it.ID, recorder.events[0].ItineraryID)
}

func TestPlan_CompletionFailureAborts(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{err: errors.New("upstream down")}
	recorder := &eventRecorder{}

	planner := service.NewPlannerService(sessions, completer, nil, nil, nil, nil, recorder, testLogger(t))

	_, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{Destination: "Kyoto", Days: 3})
	require.Error(t, err)

	// No itinerary; the assistant turn is an inline error notice.
	sess, getErr := sessions.Get(context.Background(), sessID)
	require.NoError(t, getErr)
	assert.Empty(t, sess.Itineraries)
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, model.RoleAssistant, sess.Turns[1].Role)
	assert.Contains(t, sess.Turns[1].Content, "Erreur:")

	require.Len(t, recorder.events, 1)
	assert.Equal(t, model.EventTypePlanFailed, recorder.events[0].Type)
}

func TestPlan_GeocodeFailureSkipsForecast(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: sampleCompletion}
	geocoder := &fakeGeocoder{err: errors.New("boom")}
	forecaster := &fakeForecaster{points: series8(5)}

	planner := service.NewPlannerService(sessions, completer, geocoder, forecaster, nil, nil, nil, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{Destination: "Atlantis", Days: 2})
	require.NoError(t, err)

	assert.Nil(t, resp.Itinerary.Location)
	assert.Nil(t, resp.Itinerary.Forecast)
	assert.Zero(t, forecaster.calls, "forecast must not be attempted without coordinates")
}

func TestPlan_NoGeocodeMatch(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: sampleCompletion}
	geocoder := &fakeGeocoder{loc: nil}
	forecaster := &fakeForecaster{points: series8(5)}

	planner := service.NewPlannerService(sessions, completer, geocoder, forecaster, nil, nil, nil, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{Destination: "Nowhere", Days: 1})
	require.NoError(t, err)

	assert.Nil(t, resp.Itinerary.Location)
	assert.Nil(t, resp.Itinerary.Forecast)
	assert.Zero(t, forecaster.calls)
}

func TestPlan_EnrichmentFailuresAreIndependent(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: sampleCompletion}
	geocoder := &fakeGeocoder{loc: &model.Location{Name: "Rome", Lat: 41.9, Lon: 12.5}}
	forecaster := &fakeForecaster{err: errors.New("weather down")}
	images := &fakeImages{err: errors.New("image down")}
	prices := &fakePrices{quote: &model.PriceQuote{Origin: "CDG", Destination: "FCO"}}

	planner := service.NewPlannerService(sessions, completer, geocoder, forecaster, images, prices, nil, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{
		Destination:     "Rome",
		Days:            2,
		OriginCode:      "CDG",
		DestinationCode: "FCO",
	})
	require.NoError(t, err)

	it := resp.Itinerary
	require.NotNil(t, it.Location)
	assert.Nil(t, it.Forecast)
	assert.Empty(t, it.Images)
	require.NotNil(t, it.Prices, "price lookup must survive other provider failures")
	require.Len(t, it.Days, 2)
}

func TestPlan_PriceLookupSkippedWithoutCodes(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: sampleCompletion}
	prices := &fakePrices{quote: &model.PriceQuote{}}

	planner := service.NewPlannerService(sessions, completer, nil, nil, nil, prices, nil, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{Destination: "Oslo", Days: 1})
	require.NoError(t, err)

	assert.Nil(t, resp.Itinerary.Prices)
	assert.Zero(t, prices.calls)
}

func TestPlan_HeadinglessCompletionDegradesToPlaceholders(t *testing.T) {
	sessions, sessID := newSessions(t)
	completer := &fakeLLM{content: "Je ne peux pas structurer cela."}

	planner := service.NewPlannerService(sessions, completer, nil, nil, nil, nil, nil, testLogger(t))

	resp, err := planner.Plan(context.Background(), sessID, &model.PlanRequest{Destination: "Mars", Days: 3})
	require.NoError(t, err)

	require.Len(t, resp.Itinerary.Days, 3)
	for i, day := range resp.Itinerary.Days {
		assert.Equal(t, i+1, day.Number)
	}
}
