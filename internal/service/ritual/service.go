// Package ritual implements the two-minute check-in logger. Check-ins
// are privacy-sensitive: responses carry no-store headers upstream and
// records hold only mood, note, and timestamp.
package ritual

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execufunction/exf-backend/internal/domain"
)

const maxNoteLen = 500

type ritualStore interface {
	Insert(ctx context.Context, entry *domain.RitualEntry) error
}

// Service provides ritual check-in logging.
type Service struct {
	store ritualStore
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a ritual service.
func NewService(log *slog.Logger, store ritualStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "ritual"),
		now:   time.Now,
	}
}

// CheckInInput holds the parameters of a check-in.
type CheckInInput struct {
	Mood string
	Note string
}

// CheckIn validates and records a check-in. Storage failures are logged
// and swallowed; a validated check-in always succeeds for the caller.
func (s *Service) CheckIn(ctx context.Context, input CheckInInput) error {
	mood, ok := domain.ParseMood(input.Mood)
	if !ok {
		return domain.NewInputError("invalid_mood").
			WithExtra("valid_moods", domain.ValidMoods)
	}

	note := strings.TrimSpace(input.Note)
	if len([]rune(note)) > maxNoteLen {
		return domain.NewInputError("note_too_long").
			WithExtra("max_length", maxNoteLen)
	}

	now := s.now().UTC()
	entry := &domain.RitualEntry{
		ID:        uuid.New(),
		Partition: domain.DayPartition(now),
		RowKey:    rowKey(now),
		Mood:      mood,
		Note:      note,
		CreatedAt: now,
	}

	if err := s.store.Insert(ctx, entry); err != nil {
		s.log.WarnContext(ctx, "failed to store ritual",
			slog.String("error", err.Error()))
		return nil
	}

	s.log.InfoContext(ctx, "ritual check-in",
		slog.String("mood", string(mood)),
		slog.Int("note_length", len(note)))
	return nil
}

// rowKey builds "<unix-millis>_<8 hex chars>" so same-millisecond
// check-ins stay distinct.
func rowKey(now time.Time) string {
	buf := make([]byte, 4)
	rand.Read(buf) //nolint:errcheck
	return fmt.Sprintf("%d_%s", now.UnixMilli(), hex.EncodeToString(buf))
}
