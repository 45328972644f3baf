package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/service/ritual"
)

// ritualService defines the minimal interface needed by RitualHandler.
type ritualService interface {
	CheckIn(ctx context.Context, input ritual.CheckInInput) error
}

// RitualHandler serves the daily check-in endpoint.
type RitualHandler struct {
	svc ritualService
	log *slog.Logger
}

// NewRitualHandler creates a RitualHandler.
func NewRitualHandler(svc ritualService, logger *slog.Logger) *RitualHandler {
	return &RitualHandler{svc: svc, log: logger.With("handler", "ritual")}
}

type checkInRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// CheckIn handles POST /ritual-checkin.
func (h *RitualHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.CheckIn(r.Context(), ritual.CheckInInput{
		Mood: req.Mood,
		Note: req.Note,
	})
	if handleInputError(w, err) {
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"ok":      true,
		"message": "Check-in recorded",
	})
}
