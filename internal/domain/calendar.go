package domain

import "time"

// CalendarEvent is a single parsed calendar event. Events are produced
// transiently per request and never persisted.
type CalendarEvent struct {
	Title string     `json:"title"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"`
}
