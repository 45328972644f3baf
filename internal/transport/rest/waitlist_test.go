package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/execufunction/exf-backend/internal/domain"
	"github.com/execufunction/exf-backend/internal/service/waitlist"
)

type waitlistServiceMock struct {
	SignupFunc func(ctx context.Context, input waitlist.SignupInput) (waitlist.Outcome, error)

	gotInput waitlist.SignupInput
}

func (m *waitlistServiceMock) Signup(ctx context.Context, input waitlist.SignupInput) (waitlist.Outcome, error) {
	m.gotInput = input
	return m.SignupFunc(ctx, input)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWaitlistSignup_Created(t *testing.T) {
	t.Parallel()

	svc := &waitlistServiceMock{
		SignupFunc: func(context.Context, waitlist.SignupInput) (waitlist.Outcome, error) {
			return waitlist.OutcomeCreated, nil
		},
	}
	h := NewWaitlistHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/waitlist",
		strings.NewReader(`{"email":"user@example.com","tags":["beta"]}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["ok"] != true {
		t.Errorf("body = %v, want ok:true", body)
	}
	if svc.gotInput.IP != "203.0.113.9" {
		t.Errorf("ip = %q, want first X-Forwarded-For entry", svc.gotInput.IP)
	}
}

func TestWaitlistSignup_AlreadyExists(t *testing.T) {
	t.Parallel()

	svc := &waitlistServiceMock{
		SignupFunc: func(context.Context, waitlist.SignupInput) (waitlist.Outcome, error) {
			return waitlist.OutcomeAlreadyExists, nil
		},
	}
	h := NewWaitlistHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/waitlist",
		strings.NewReader(`{"email":"user@example.com"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body) //nolint:errcheck
	if body["already"] != true {
		t.Errorf("body = %v, want already:true", body)
	}
}

func TestWaitlistSignup_InvalidEmail(t *testing.T) {
	t.Parallel()

	svc := &waitlistServiceMock{
		SignupFunc: func(context.Context, waitlist.SignupInput) (waitlist.Outcome, error) {
			return 0, domain.NewInputError("invalid_email")
		},
	}
	h := NewWaitlistHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/waitlist",
		strings.NewReader(`{"email":"nope"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body) //nolint:errcheck
	if body["error"] != "invalid_email" {
		t.Errorf("error = %v, want invalid_email", body["error"])
	}
}

func TestWaitlistSignup_RateLimited(t *testing.T) {
	t.Parallel()

	svc := &waitlistServiceMock{
		SignupFunc: func(context.Context, waitlist.SignupInput) (waitlist.Outcome, error) {
			return 0, domain.ErrRateLimited
		},
	}
	h := NewWaitlistHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/waitlist",
		strings.NewReader(`{"email":"user@example.com"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body) //nolint:errcheck
	if body["error"] != "too_many_requests" {
		t.Errorf("error = %v, want too_many_requests", body["error"])
	}
}

func TestWaitlistSignup_MalformedJSON(t *testing.T) {
	t.Parallel()

	svc := &waitlistServiceMock{
		SignupFunc: func(context.Context, waitlist.SignupInput) (waitlist.Outcome, error) {
			t.Error("service should not be called on malformed body")
			return 0, nil
		},
	}
	h := NewWaitlistHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/waitlist", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body) //nolint:errcheck
	if body["error"] != "invalid_json" {
		t.Errorf("error = %v, want invalid_json", body["error"])
	}
}
