// Package contact implements contact-form intake: validation, keyword
// topic inference, and a best-effort write to the contact table.
package contact

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execufunction/exf-backend/internal/domain"
)

const (
	minMessageLen   = 5
	maxMessageLen   = 2000
	maxUserAgentLen = 200
)

type contactStore interface {
	Insert(ctx context.Context, rec *domain.ContactRecord) error
}

// Service provides contact intake.
type Service struct {
	store contactStore
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a contact service.
func NewService(log *slog.Logger, store contactStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "contact"),
		now:   time.Now,
	}
}

// SubmitInput holds the parameters of a contact submission.
type SubmitInput struct {
	Email     string
	Message   string
	Topic     string
	UserAgent string
}

// Submit validates and records a contact message. There is no dedup:
// every validated submission becomes a new record. An unknown or missing
// topic is inferred from the message body. Storage failures are logged
// and swallowed — validated intent always reads as success to the caller.
func (s *Service) Submit(ctx context.Context, input SubmitInput) error {
	email, err := domain.NormalizeEmail(input.Email)
	if err != nil {
		return err
	}

	message := strings.TrimSpace(input.Message)
	if len([]rune(message)) < minMessageLen {
		return domain.NewInputError("message_too_short")
	}
	message = truncate(message, maxMessageLen)

	topic, ok := domain.ParseTopic(input.Topic)
	if !ok {
		topic = domain.InferTopic(message)
	}

	now := s.now().UTC()
	rec := &domain.ContactRecord{
		ID:        uuid.New(),
		Partition: domain.DayPartition(now),
		RowKey:    domain.ShortFingerprint(email, now.Format(time.RFC3339Nano)),
		Email:     email,
		Message:   message,
		Topic:     topic,
		Priority:  topic != domain.TopicGeneral,
		UserAgent: truncate(input.UserAgent, maxUserAgentLen),
		CreatedAt: now,
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		s.log.ErrorContext(ctx, "contact storage failed",
			slog.String("email_hash", domain.Fingerprint(email)),
			slog.String("error", err.Error()))
		return nil
	}

	s.log.InfoContext(ctx, "contact form submission",
		slog.String("email_hash", domain.Fingerprint(email)),
		slog.String("topic", string(topic)),
		slog.Int("message_length", len(message)))
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
