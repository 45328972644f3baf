package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/service/contact"
)

// contactService defines the minimal interface needed by ContactHandler.
type contactService interface {
	Submit(ctx context.Context, input contact.SubmitInput) error
}

// ContactHandler serves the contact-form endpoint.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contact")}
}

type contactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	Topic   string `json:"topic"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.Submit(r.Context(), contact.SubmitInput{
		Email:     req.Email,
		Message:   req.Message,
		Topic:     req.Topic,
		UserAgent: r.UserAgent(),
	})
	if handleInputError(w, err) {
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
}
