// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PlanDuration tracks end-to-end plan request duration.
	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_duration_seconds",
			Help:    "End-to-end itinerary plan duration",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"status"},
	)

	// ProviderCallsTotal tracks enrichment provider calls by outcome.
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Total enrichment provider calls",
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// ItinerariesTotal tracks total itineraries produced.
	ItinerariesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itineraries_total",
			Help: "Total itineraries produced",
		},
	)

	// PlaceholderDaysTotal tracks days padded with placeholders because
	// the generated text covered fewer days than requested.
	PlaceholderDaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "placeholder_days_total",
			Help: "Total itinerary days filled with placeholders",
		},
	)

	// SessionsTotal tracks total planning sessions created.
	SessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_total",
			Help: "Total planning sessions created",
		},
	)

	// ExportsTotal tracks itinerary exports by format.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Total itinerary exports",
		},
		[]string{"format"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordProviderCall records the outcome of one provider call.
func RecordProviderCall(provider string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ProviderCallsTotal.WithLabelValues(provider, status).Inc()
}

// RecordLLMTokens records tokens consumed by a completion.
func RecordLLMTokens(model string, tokensIn, tokensOut int) {
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}
