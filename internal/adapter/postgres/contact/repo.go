// Package contact implements the contact-message repository using
// PostgreSQL. Contact intake is append-only; there is no dedup.
package contact

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/execufunction/exf-backend/internal/adapter/postgres"
	"github.com/execufunction/exf-backend/internal/domain"
)

const table = "contact_messages"

var columns = []string{
	"id", "partition", "row_key", "email", "message",
	"topic", "priority", "user_agent", "created_at",
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides contact-message persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new contact repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Insert stores a new contact message.
func (r *Repo) Insert(ctx context.Context, rec *domain.ContactRecord) error {
	sql, args, err := builder.
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Partition, rec.RowKey, rec.Email, rec.Message,
			rec.Topic, rec.Priority, rec.UserAgent, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build contact insert: %w", err)
	}

	_, err = r.q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "contact_message", rec.RowKey)
}

// ListByMonths returns all messages whose day partition falls in one of
// the given YYYY-MM months, newest first. Used by the admin export.
func (r *Repo) ListByMonths(ctx context.Context, months []string) ([]domain.ContactRecord, error) {
	sql, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Expr("left(partition, 7) = ANY(?)", months)).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build contact list: %w", err)
	}

	var recs []domain.ContactRecord
	if err := pgxscan.Select(ctx, r.q, &recs, sql, args...); err != nil {
		return nil, fmt.Errorf("list contact_messages: %w", err)
	}
	return recs, nil
}
