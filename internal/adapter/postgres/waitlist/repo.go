// Package waitlist implements the waitlist repository using PostgreSQL.
// The (partition, dedup_key) unique constraint is what makes concurrent
// signups for the same email resolve to a single record.
package waitlist

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/execufunction/exf-backend/internal/adapter/postgres"
	"github.com/execufunction/exf-backend/internal/domain"
)

const table = "waitlist_entries"

var columns = []string{
	"id", "partition", "dedup_key", "email",
	"utm_source", "utm_medium", "utm_campaign",
	"tags", "referrer", "consent", "created_at",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides waitlist persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new waitlist repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// GetByDedupKey returns the signup record stored under (partition,
// dedupKey). Returns domain.ErrNotFound when no record exists.
func (r *Repo) GetByDedupKey(ctx context.Context, partition, dedupKey string) (*domain.SignupRecord, error) {
	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"partition": partition, "dedup_key": dedupKey}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build waitlist select: %w", err)
	}

	var rec domain.SignupRecord
	if err := pgxscan.Get(ctx, r.q, &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("waitlist_entry %s: %w", dedupKey, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "waitlist_entry", dedupKey)
	}
	return &rec, nil
}

// Insert stores a new signup record. A unique violation on (partition,
// dedup_key) is mapped to domain.ErrAlreadyExists so races between
// concurrent signups surface as the idempotent outcome.
func (r *Repo) Insert(ctx context.Context, rec *domain.SignupRecord) error {
	sql, args, err := builder.
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Partition, rec.DedupKey, rec.Email,
			rec.UTMSource, rec.UTMMedium, rec.UTMCampaign,
			rec.Tags, rec.Referrer, rec.Consent, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build waitlist insert: %w", err)
	}

	_, err = r.q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "waitlist_entry", rec.DedupKey)
}

// ListByMonths returns all signups whose retention partition is in months,
// newest first. Used by the admin export.
func (r *Repo) ListByMonths(ctx context.Context, months []string) ([]domain.SignupRecord, error) {
	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"partition": months}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build waitlist list: %w", err)
	}

	var recs []domain.SignupRecord
	if err := pgxscan.Select(ctx, r.q, &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("list waitlist_entries: %w", err)
	}
	return recs, nil
}
