package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const feedICS = "BEGIN:VCALENDAR\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Team Sync\r\n" +
	"DTSTART:20250601T100000Z\r\n" +
	"DTEND:20250601T103000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Board Review\r\n" +
	"DTSTART:20250610T150000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Old Standup\r\n" +
	"DTSTART:20250101T090000Z\r\n" +
	"DTEND:20250101T091500Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func newTestService(url string) *Service {
	svc := NewService(slog.Default(), url, "America/Chicago", 5*time.Second)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestNext3_FetchesConfiguredFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		w.Write([]byte(feedICS)) //nolint:errcheck
	}))
	defer srv.Close()

	events, err := newTestService(srv.URL).Next3(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 upcoming", len(events))
	}
	if events[0].Title != "Team Sync" || events[1].Title != "Board Review" {
		t.Errorf("events out of order: %q, %q", events[0].Title, events[1].Title)
	}
}

func TestNext3_EmptyURLServesSample(t *testing.T) {
	t.Parallel()

	events, err := newTestService("").Next3(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1 (only the future sample event)", len(events))
	}
	if events[0].Title != "Future Event" {
		t.Errorf("title = %q, want Future Event", events[0].Title)
	}
}

func TestNext3_FetchErrorFallsBack(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	events, err := newTestService(srv.URL).Next3(context.Background())
	if err != nil {
		t.Fatalf("fetch failure should fall back, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "Future Event" {
		t.Fatalf("events = %v, want the sample fallback", events)
	}
}

func TestNext3_UnreachableHostFallsBack(t *testing.T) {
	t.Parallel()

	// Closed server: the connection is refused immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	events, err := newTestService(srv.URL).Next3(context.Background())
	if err != nil {
		t.Fatalf("unreachable feed should fall back, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "Future Event" {
		t.Fatalf("events = %v, want the sample fallback", events)
	}
}

func TestContext_Envelope(t *testing.T) {
	t.Parallel()

	env, err := newTestService("").Context(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.NowISO != "2025-05-01T00:00:00Z" {
		t.Errorf("now_iso = %q", env.NowISO)
	}
	if env.Timezone != "America/Chicago" {
		t.Errorf("tz = %q", env.Timezone)
	}
	if env.Next3Events == nil {
		t.Error("next_3_events must never be null")
	}
	if env.InProgressTask != nil || env.SelectedTask != nil {
		t.Error("task fields are reserved and must stay null")
	}
	if env.DeadlineSoon {
		t.Error("deadline_soon defaults to false")
	}
}
