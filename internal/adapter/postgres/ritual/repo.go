// Package ritual implements the ritual check-in repository using
// PostgreSQL.
package ritual

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/execufunction/exf-backend/internal/adapter/postgres"
	"github.com/execufunction/exf-backend/internal/domain"
)

const table = "ritual_checkins"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides ritual check-in persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new ritual repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Insert stores a new check-in entry.
func (r *Repo) Insert(ctx context.Context, entry *domain.RitualEntry) error {
	sql, args, err := builder.
		Insert(table).
		Columns("id", "partition", "row_key", "mood", "note", "created_at").
		Values(entry.ID, entry.Partition, entry.RowKey, entry.Mood, entry.Note, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ritual insert: %w", err)
	}

	_, err = r.q.Exec(ctx, sql, args...)
	return postgres.MapError(err, "ritual_checkin", entry.RowKey)
}
