// Package waitlist implements the idempotent signup flow: validation,
// throttling, dedup-key derivation, and a check-then-conditional-insert
// against the storage collaborator.
package waitlist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execufunction/exf-backend/internal/domain"
)

// Outcome reports how a signup resolved. Both outcomes are success from
// the caller's perspective; they only differ in status code and payload.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeAlreadyExists
)

type signupStore interface {
	GetByDedupKey(ctx context.Context, partition, dedupKey string) (*domain.SignupRecord, error)
	Insert(ctx context.Context, rec *domain.SignupRecord) error
}

type throttleGate interface {
	Admit(ctx context.Context, identity, ip string) error
}

// Service provides waitlist signup.
type Service struct {
	store signupStore
	gate  throttleGate
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a waitlist service.
func NewService(log *slog.Logger, store signupStore, gate throttleGate) *Service {
	return &Service{
		store: store,
		gate:  gate,
		log:   log.With("service", "waitlist"),
		now:   time.Now,
	}
}

// SignupInput holds the parameters of a signup request.
type SignupInput struct {
	Email       string
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	Tags        []string
	Referrer    *string
	IP          string
}

// Signup validates and records a waitlist signup. Repeat signups for the
// same normalized email within the retention partition resolve to
// OutcomeAlreadyExists without touching the first-seen record. Storage
// failures other than a dedup conflict are logged and swallowed — the
// record of intent is best-effort and never blocks the caller.
func (s *Service) Signup(ctx context.Context, input SignupInput) (Outcome, error) {
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return 0, err
	}

	if err := s.gate.Admit(ctx, email, input.IP); err != nil {
		return 0, err
	}

	now := s.now().UTC()
	partition := domain.MonthPartition(now)
	dedupKey := domain.Fingerprint(email)

	existing, err := s.store.GetByDedupKey(ctx, partition, dedupKey)
	if err == nil && existing != nil {
		s.log.InfoContext(ctx, "repeat signup",
			slog.String("email_hash", dedupKey))
		return OutcomeAlreadyExists, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		// Degraded read; fall through and let the insert decide.
		s.log.WarnContext(ctx, "waitlist dedup check failed",
			slog.String("error", err.Error()))
	}

	rec := &domain.SignupRecord{
		ID:          uuid.New(),
		Partition:   partition,
		DedupKey:    dedupKey,
		Email:       email,
		UTMSource:   input.UTMSource,
		UTMMedium:   input.UTMMedium,
		UTMCampaign: input.UTMCampaign,
		Tags:        cleanTags(input.Tags),
		Referrer:    input.Referrer,
		Consent:     true,
		CreatedAt:   now,
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost the race to a concurrent signup; same outcome.
			return OutcomeAlreadyExists, nil
		}
		s.log.WarnContext(ctx, "waitlist storage skipped",
			slog.String("email_hash", dedupKey),
			slog.String("error", err.Error()))
		return OutcomeCreated, nil
	}

	s.log.InfoContext(ctx, "waitlist signup",
		slog.String("email_hash", dedupKey),
		slog.String("ip", input.IP))
	return OutcomeCreated, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
