package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripgpt/planning-platform/internal/export"
	"github.com/tripgpt/planning-platform/internal/middleware"
	"github.com/tripgpt/planning-platform/internal/model"
	"github.com/tripgpt/planning-platform/internal/session"
	"github.com/tripgpt/planning-platform/pkg/logger"
	"github.com/tripgpt/planning-platform/pkg/metrics"
)

// ExportHandler serves itinerary downloads.
type ExportHandler struct {
	sessions *session.Service
	logger   *logger.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(sessions *session.Service, log *logger.Logger) *ExportHandler {
	return &ExportHandler{
		sessions: sessions,
		logger:   log,
	}
}

// Export handles
// GET /api/v1/sessions/:id/itineraries/:index/export?format=json|csv|pdf
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	if err := middleware.ValidateSessionID(sessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid itinerary index")
		return
	}

	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatJSON
	}
	if format.ContentType() == "" {
		writeError(w, http.StatusBadRequest, "unsupported format")
		return
	}

	it, err := h.sessions.Itinerary(ctx, sessionID, index)
	if err != nil {
		if errors.Is(err, session.ErrNoItinerary) {
			writeError(w, http.StatusNotFound, "itinerary not found")
			return
		}
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	data, err := encode(it, format)
	if err != nil {
		h.logger.Error("failed to encode itinerary")
		writeError(w, http.StatusInternalServerError, "failed to encode itinerary")
		return
	}

	metrics.ExportsTotal.WithLabelValues(string(format)).Inc()

	filename := fmt.Sprintf("itinerary-%s.%s", it.ID, format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func encode(it *model.Itinerary, format export.Format) ([]byte, error) {
	switch format {
	case export.FormatCSV:
		return export.CSV(it)
	case export.FormatPDF:
		return export.PDF(it)
	default:
		return export.JSON(it)
	}
}
