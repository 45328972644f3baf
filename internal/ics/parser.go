// Package ics implements minimal parsing of the iCalendar text format:
// VEVENT blocks with DTSTART, DTEND, and SUMMARY properties. Anything the
// parser does not recognize is silently ignored.
package ics

import (
	"strings"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

// DefaultTitle is used when a VEVENT block has no SUMMARY line.
const DefaultTitle = "Event"

// Parse scans icsText for BEGIN:VEVENT / END:VEVENT blocks and returns the
// events that carry a parseable start time. A missing title defaults to
// DefaultTitle, a missing end stays nil. Malformed or unrecognized lines
// yield no error; the parser is pure and never fails.
func Parse(icsText string) []domain.CalendarEvent {
	var (
		events  []domain.CalendarEvent
		current *eventBuilder
	)

	for _, line := range strings.Split(icsText, "\n") {
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.HasPrefix(line, "BEGIN:VEVENT"):
			current = &eventBuilder{}
		case strings.HasPrefix(line, "END:VEVENT"):
			if current != nil && current.start != nil {
				events = append(events, current.build())
			}
			current = nil
		case current == nil:
			// outside any VEVENT block
		case strings.HasPrefix(line, "DTSTART"):
			current.start = parseDate(propertyValue(line))
		case strings.HasPrefix(line, "DTEND"):
			current.end = parseDate(propertyValue(line))
		case strings.HasPrefix(line, "SUMMARY"):
			current.title = strings.TrimSpace(propertyValue(line))
		}
	}

	return events
}

type eventBuilder struct {
	title string
	start *time.Time
	end   *time.Time
}

func (b *eventBuilder) build() domain.CalendarEvent {
	title := b.title
	if title == "" {
		title = DefaultTitle
	}
	return domain.CalendarEvent{Title: title, Start: *b.start, End: b.end}
}

// propertyValue returns the portion of a content line after the first colon.
// Property parameters ("DTSTART;VALUE=DATE:...") are discarded with the key.
func propertyValue(line string) string {
	if i := strings.IndexByte(line, ':'); i >= 0 {
		return line[i+1:]
	}
	return ""
}

// parseDate converts the two accepted iCalendar date shapes into a UTC
// instant: YYYYMMDDThhmmssZ, or YYYYMMDD at midnight UTC. Any other shape
// yields nil.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)

	var layout string
	switch len(s) {
	case 16:
		layout = "20060102T150405Z"
	case 8:
		layout = "20060102"
	default:
		return nil
	}

	ts, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &ts
}
