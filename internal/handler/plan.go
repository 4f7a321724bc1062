package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripgpt/planning-platform/internal/middleware"
	"github.com/tripgpt/planning-platform/internal/model"
	"github.com/tripgpt/planning-platform/internal/service"
	"github.com/tripgpt/planning-platform/internal/session"
	"github.com/tripgpt/planning-platform/pkg/logger"
)

// PlanHandler handles itinerary plan requests.
type PlanHandler struct {
	planner  *service.PlannerService
	sessions *session.Service
	logger   *logger.Logger
}

// NewPlanHandler creates a new plan handler.
func NewPlanHandler(planner *service.PlannerService, sessions *session.Service, log *logger.Logger) *PlanHandler {
	return &PlanHandler{
		planner:  planner,
		sessions: sessions,
		logger:   log,
	}
}

// Plan handles POST /api/v1/sessions/:id/plan
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.sessions.Get(ctx, sessionID); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req model.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validatePlanRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.planner.Plan(ctx, sessionID, &req)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		// The failure is already recorded in the session transcript;
		// surface it to the caller as an upstream error.
		writeError(w, http.StatusBadGateway, "itinerary generation failed")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func validatePlanRequest(req *model.PlanRequest) error {
	if err := middleware.ValidateDestination(req.Destination); err != nil {
		return err
	}
	if err := middleware.ValidateDays(req.Days); err != nil {
		return err
	}
	if err := middleware.ValidateIATACode(req.OriginCode); err != nil {
		return err
	}
	return middleware.ValidateIATACode(req.DestinationCode)
}
