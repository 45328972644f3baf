package ics

import (
	"sort"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

// NextN returns the first n events that are still upcoming or in progress
// at now: events whose end (or start, when there is no end) is at or after
// now, sorted ascending by start time. The input slice is not mutated.
func NextN(events []domain.CalendarEvent, n int, now time.Time) []domain.CalendarEvent {
	upcoming := make([]domain.CalendarEvent, 0, len(events))
	for _, ev := range events {
		edge := ev.Start
		if ev.End != nil {
			edge = *ev.End
		}
		if !edge.Before(now) {
			upcoming = append(upcoming, ev)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(upcoming[j].Start)
	})

	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}
