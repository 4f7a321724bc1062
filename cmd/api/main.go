// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tripgpt/planning-platform/internal/config"
	"github.com/tripgpt/planning-platform/internal/flights"
	"github.com/tripgpt/planning-platform/internal/geo"
	"github.com/tripgpt/planning-platform/internal/handler"
	"github.com/tripgpt/planning-platform/internal/imagegen"
	"github.com/tripgpt/planning-platform/internal/llm"
	"github.com/tripgpt/planning-platform/internal/middleware"
	natsclient "github.com/tripgpt/planning-platform/internal/nats"
	"github.com/tripgpt/planning-platform/internal/service"
	"github.com/tripgpt/planning-platform/internal/session"
	"github.com/tripgpt/planning-platform/internal/weather"
	"github.com/tripgpt/planning-platform/pkg/logger"
	"github.com/tripgpt/planning-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "trip-planning-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS for the itinerary event feed; optional.
	var events *natsclient.EventPublisher
	if cfg.NATSURL != "" {
		natsConn, err := natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer natsConn.Close()

		events = natsclient.NewEventPublisher(natsConn)
		if err := events.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure stream", zap.Error(err))
			os.Exit(1)
		}
	} else {
		log.Info("NATS not configured, event publishing disabled")
	}

	// Initialize LLM client
	var llmClient llm.Client
	if cfg.AnthropicAPIKey != "" && cfg.DefaultLLM != string(llm.ProviderOpenAI) {
		llmClient, err = llm.NewAnthropicClient(cfg.AnthropicAPIKey)
		if err != nil {
			log.Warn("failed to create Anthropic client, LLM features disabled", zap.Error(err))
		}
	} else if cfg.OpenAIAPIKey != "" {
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			log.Warn("failed to create OpenAI client, LLM features disabled", zap.Error(err))
		}
	}

	// Enrichment providers are each optional. A missing key only
	// disables the corresponding itinerary field.
	var geocoder service.Geocoder
	var forecaster service.Forecaster
	if cfg.OpenWeatherAPIKey != "" {
		geoClient, err := geo.NewClient(cfg.OpenWeatherAPIKey, "", cfg.ProviderTimeout)
		if err != nil {
			log.Warn("failed to create geocoding client", zap.Error(err))
		} else {
			geocoder = geoClient
		}
		weatherClient, err := weather.NewClient(cfg.OpenWeatherAPIKey, "", cfg.ProviderTimeout)
		if err != nil {
			log.Warn("failed to create forecast client", zap.Error(err))
		} else {
			forecaster = weatherClient
		}
	} else {
		log.Info("OpenWeather not configured, geocoding and forecast disabled")
	}

	var images service.ImageGenerator
	if cfg.OpenAIAPIKey != "" {
		imageClient, err := imagegen.NewClient(cfg.OpenAIAPIKey, cfg.ImageModel, cfg.ImageStyleSuffix)
		if err != nil {
			log.Warn("failed to create image client", zap.Error(err))
		} else {
			images = imageClient
		}
	}

	var prices service.PriceFinder
	if cfg.AmadeusClientID != "" && cfg.AmadeusClientSecret != "" {
		flightClient, err := flights.NewClient(cfg.AmadeusClientID, cfg.AmadeusClientSecret, cfg.AmadeusBaseURL, cfg.ProviderTimeout)
		if err != nil {
			log.Warn("failed to create flight client", zap.Error(err))
		} else {
			prices = flightClient
		}
	} else {
		log.Info("Amadeus not configured, price lookup disabled")
	}

	// Initialize services
	sessions := session.NewService(log)

	var eventPublisher service.EventPublisher
	if events != nil {
		eventPublisher = events
	}
	planner := service.NewPlannerService(sessions, llmClient, geocoder, forecaster, images, prices, eventPublisher, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(llmClient)
	sessionHandler := handler.NewSessionHandler(sessions, log)
	planHandler := handler.NewPlanHandler(planner, sessions, log)
	exportHandler := handler.NewExportHandler(sessions, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Disposition", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/", sessionHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)

				r.Post("/plan", planHandler.Plan)

				r.Get("/turns", sessionHandler.Turns)
				r.Get("/itineraries", sessionHandler.Itineraries)
				r.Post("/itineraries/{index}/select", sessionHandler.Select)
				r.Get("/itineraries/{index}/export", exportHandler.Export)
			})
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
