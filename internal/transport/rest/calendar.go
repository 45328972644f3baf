package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/domain"
	"github.com/execufunction/exf-backend/internal/service/calendar"
)

// calendarService defines the minimal interface needed by CalendarHandler.
type calendarService interface {
	Next3(ctx context.Context) ([]domain.CalendarEvent, error)
	Context(ctx context.Context) (*calendar.Envelope, error)
}

// CalendarHandler serves the calendar endpoints.
type CalendarHandler struct {
	svc calendarService
	log *slog.Logger
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{svc: svc, log: logger.With("handler", "calendar")}
}

// Next3 handles GET /calendar/next3.
func (h *CalendarHandler) Next3(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Next3(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "calendar next3", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Envelope handles GET /context-envelope.
func (h *CalendarHandler) Envelope(w http.ResponseWriter, r *http.Request) {
	env, err := h.svc.Context(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "context envelope", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, env)
}
