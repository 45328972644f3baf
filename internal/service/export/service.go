// Package export builds CSV snapshots of waitlist signups and contact
// messages for the admin endpoint. Export is read-only and only
// available when durable storage is configured.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

const (
	// TableWaitlist and TableContact are the exportable tables.
	TableWaitlist = "waitlist"
	TableContact  = "contact"

	previewLen       = 50
	monthLayout      = "2006-01"
	defaultRangeDays = 90
)

type waitlistLister interface {
	ListByMonths(ctx context.Context, months []string) ([]domain.SignupRecord, error)
}

type contactLister interface {
	ListByMonths(ctx context.Context, months []string) ([]domain.ContactRecord, error)
}

// Service assembles CSV exports from the month-partitioned tables.
type Service struct {
	waitlist waitlistLister
	contact  contactLister
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates an export service.
func NewService(log *slog.Logger, waitlist waitlistLister, contact contactLister) *Service {
	return &Service{
		waitlist: waitlist,
		contact:  contact,
		log:      log.With("service", "export"),
		now:      time.Now,
	}
}

// Export returns the CSV header and rows for the given table over the
// from..to month range (YYYY-MM, inclusive). Unparseable or missing
// bounds fall back to the last 90 days. Rows are newest first.
func (s *Service) Export(ctx context.Context, table, from, to string) ([]string, [][]string, error) {
	months := s.monthRange(from, to)

	switch table {
	case TableWaitlist:
		return s.exportWaitlist(ctx, months)
	case TableContact:
		return s.exportContact(ctx, months)
	default:
		return nil, nil, domain.NewInputError("invalid_table").
			WithExtra("valid_tables", []string{TableWaitlist, TableContact})
	}
}

func (s *Service) exportWaitlist(ctx context.Context, months []string) ([]string, [][]string, error) {
	recs, err := s.waitlist.ListByMonths(ctx, months)
	if err != nil {
		return nil, nil, fmt.Errorf("export waitlist: %w", err)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	header := []string{"email", "timestamp", "utm_source", "utm_medium", "utm_campaign", "tags", "consent", "referrer"}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.Email,
			rec.CreatedAt.UTC().Format(time.RFC3339),
			deref(rec.UTMSource),
			deref(rec.UTMMedium),
			deref(rec.UTMCampaign),
			strings.Join(rec.Tags, ";"),
			strconv.FormatBool(rec.Consent),
			deref(rec.Referrer),
		})
	}
	return header, rows, nil
}

func (s *Service) exportContact(ctx context.Context, months []string) ([]string, [][]string, error) {
	recs, err := s.contact.ListByMonths(ctx, months)
	if err != nil {
		return nil, nil, fmt.Errorf("export contact: %w", err)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})

	header := []string{"email", "timestamp", "topic", "message_preview", "priority"}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.Email,
			rec.CreatedAt.UTC().Format(time.RFC3339),
			string(rec.Topic),
			preview(rec.Message),
			strconv.FormatBool(rec.Priority),
		})
	}
	return header, rows, nil
}

// monthRange expands from..to into the list of YYYY-MM partitions it
// covers. Bad input degrades to the default window instead of erroring
// so a sloppy query string still produces a usable export.
func (s *Service) monthRange(from, to string) []string {
	now := s.now().UTC()
	start := now.AddDate(0, 0, -defaultRangeDays)
	end := now

	if t, err := time.Parse(monthLayout, from); err == nil {
		start = t
	} else if from != "" {
		s.log.Warn("ignoring bad export range bound", slog.String("from", from))
	}
	if t, err := time.Parse(monthLayout, to); err == nil {
		end = t
	} else if to != "" {
		s.log.Warn("ignoring bad export range bound", slog.String("to", to))
	}
	if end.Before(start) {
		start, end = end, start
	}

	var months []string
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		months = append(months, cur.Format(monthLayout))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// preview collapses a message to a single-line 50-char excerpt.
func preview(message string) string {
	flat := strings.Join(strings.Fields(message), " ")
	runes := []rune(flat)
	if len(runes) <= previewLen {
		return flat
	}
	return string(runes[:previewLen])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
