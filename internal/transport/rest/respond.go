package rest

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/execufunction/exf-backend/internal/domain"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError responds with {"error": code}. Codes are stable strings
// the frontend switches on; human-readable detail stays in the logs.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeInputError responds 400 with the validation code plus any extra
// hint fields the error carries (valid_moods, max_length, ...).
func writeInputError(w http.ResponseWriter, ie *domain.InputError) {
	body := map[string]any{"error": ie.Code}
	for k, v := range ie.Extra {
		body[k] = v
	}
	writeJSON(w, http.StatusBadRequest, body)
}

// decodeJSON reads a bounded JSON body into v. Any decode failure maps
// to the invalid_json code.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// handleInputError maps domain errors to responses shared by the form
// endpoints. Returns false when err was nil.
func handleInputError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var ie *domain.InputError
	switch {
	case errors.As(err, &ie):
		writeInputError(w, ie)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too_many_requests")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
	return true
}

// clientIP returns the caller's address: first X-Forwarded-For entry
// when present (we sit behind a proxy in production), else the
// connection's remote host.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
