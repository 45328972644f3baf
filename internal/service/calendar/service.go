// Package calendar serves upcoming events from a static ICS feed. The
// feed is fetched on demand; when no feed is configured or the fetch
// fails, a built-in sample calendar keeps the endpoints serving.
package calendar

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
	"github.com/execufunction/exf-backend/internal/ics"
)

const maxFeedBytes = 1 << 20

// sampleICS is the fallback calendar used when no feed URL is
// configured or the feed cannot be fetched.
const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//execufunction//sample//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:sample-1\r\n" +
	"SUMMARY:Sample Meeting\r\n" +
	"DTSTART:20250101T170000Z\r\n" +
	"DTEND:20250101T173000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:sample-2\r\n" +
	"SUMMARY:Future Event\r\n" +
	"DTSTART:20260101T120000Z\r\n" +
	"DTEND:20260101T130000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

// Service fetches and filters calendar events.
type Service struct {
	url      string
	timezone string
	client   *http.Client
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a calendar service. url may be empty, in which
// case the built-in sample feed is served.
func NewService(log *slog.Logger, url, timezone string, fetchTimeout time.Duration) *Service {
	return &Service{
		url:      url,
		timezone: timezone,
		client:   &http.Client{Timeout: fetchTimeout},
		log:      log.With("service", "calendar"),
		now:      time.Now,
	}
}

// Envelope is the context payload consumed by the dashboard widget.
// Task fields are reserved and always null for now.
type Envelope struct {
	NowISO         string                 `json:"now_iso"`
	Timezone       string                 `json:"tz"`
	Next3Events    []domain.CalendarEvent `json:"next_3_events"`
	InProgressTask any                    `json:"in_progress_task"`
	SelectedTask   any                    `json:"selected_task"`
	DeadlineSoon   bool                   `json:"deadline_soon"`
}

// Next3 returns up to three upcoming events. An event still in
// progress at the reference time counts as upcoming. The error return
// exists for the handler contract; the feed itself can always fall
// back to the sample calendar.
func (s *Service) Next3(ctx context.Context) ([]domain.CalendarEvent, error) {
	events := ics.Parse(s.fetch(ctx))
	next := ics.NextN(events, 3, s.now())
	if next == nil {
		next = []domain.CalendarEvent{}
	}
	return next, nil
}

// Context assembles the dashboard envelope around Next3.
func (s *Service) Context(ctx context.Context) (*Envelope, error) {
	next, err := s.Next3(ctx)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		NowISO:      s.now().UTC().Format(time.RFC3339),
		Timezone:    s.timezone,
		Next3Events: next,
	}, nil
}

// fetch returns the raw ICS text, falling back to the sample feed when
// no URL is configured or the fetch fails in any way.
func (s *Service) fetch(ctx context.Context) string {
	if s.url == "" {
		return sampleICS
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		s.log.WarnContext(ctx, "bad calendar feed url",
			slog.String("error", err.Error()))
		return sampleICS
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WarnContext(ctx, "calendar feed fetch failed",
			slog.String("error", err.Error()))
		return sampleICS
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.WarnContext(ctx, "calendar feed returned non-2xx",
			slog.Int("status", resp.StatusCode))
		return sampleICS
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		s.log.WarnContext(ctx, "calendar feed read failed",
			slog.String("error", err.Error()))
		return sampleICS
	}
	return string(body)
}
