package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/service/waitlist"
)

// waitlistService defines the minimal interface needed by WaitlistHandler.
type waitlistService interface {
	Signup(ctx context.Context, input waitlist.SignupInput) (waitlist.Outcome, error)
}

// WaitlistHandler serves the waitlist signup endpoint.
type WaitlistHandler struct {
	svc waitlistService
	log *slog.Logger
}

// NewWaitlistHandler creates a WaitlistHandler.
func NewWaitlistHandler(svc waitlistService, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{svc: svc, log: logger.With("handler", "waitlist")}
}

type signupRequest struct {
	Email       string   `json:"email"`
	UTMSource   *string  `json:"utm_source"`
	UTMMedium   *string  `json:"utm_medium"`
	UTMCampaign *string  `json:"utm_campaign"`
	Tags        []string `json:"tags"`
	Referrer    *string  `json:"ref"`
}

// Signup handles POST /waitlist. A repeat signup is not an error: it
// responds 200 with already:true where a first signup responds 201.
func (h *WaitlistHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.svc.Signup(r.Context(), waitlist.SignupInput{
		Email:       req.Email,
		UTMSource:   req.UTMSource,
		UTMMedium:   req.UTMMedium,
		UTMCampaign: req.UTMCampaign,
		Tags:        req.Tags,
		Referrer:    req.Referrer,
		IP:          clientIP(r),
	})
	if handleInputError(w, err) {
		return
	}

	if outcome == waitlist.OutcomeAlreadyExists {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "already": true})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}
