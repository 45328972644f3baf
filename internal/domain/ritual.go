package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mood is the self-reported state of a ritual check-in.
type Mood string

// ValidMoods lists the accepted check-in moods, in display order.
var ValidMoods = []Mood{"great", "good", "ok", "struggling", "bad"}

// ParseMood lowercases and trims s and reports whether it is a valid mood.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidMoods {
		if m == valid {
			return m, true
		}
	}
	return "", false
}

// RitualEntry is a two-minute check-in log entry.
type RitualEntry struct {
	ID        uuid.UUID `db:"id"`
	Partition string    `db:"partition"`
	RowKey    string    `db:"row_key"`
	Mood      Mood      `db:"mood"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}
