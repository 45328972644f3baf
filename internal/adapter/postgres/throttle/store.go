// Package throttle implements the throttle entry store on PostgreSQL,
// giving the gate the atomic conditional-insert it needs for correct
// counting across multiple instances.
package throttle

import (
	"context"
	"time"

	"github.com/execufunction/exf-backend/internal/adapter/postgres"
)

// incrSQL atomically creates or bumps a bucket counter. An entry whose
// expires_at has passed is reused as a fresh bucket instead of growing.
const incrSQL = `
INSERT INTO throttle_entries (key, hits, expires_at)
VALUES ($1, 1, $2)
ON CONFLICT (key) DO UPDATE SET
    hits       = CASE WHEN throttle_entries.expires_at <= now()
                      THEN 1 ELSE throttle_entries.hits + 1 END,
    expires_at = CASE WHEN throttle_entries.expires_at <= now()
                      THEN EXCLUDED.expires_at ELSE throttle_entries.expires_at END
RETURNING hits`

// Store provides throttle entry persistence backed by PostgreSQL.
type Store struct {
	q postgres.Querier
}

// New creates a new throttle store.
func New(q postgres.Querier) *Store {
	return &Store{q: q}
}

// Incr atomically increments the counter for key, resetting expired
// entries. Expired rows are left for the cleanup command to delete.
func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int, error) {
	var hits int
	err := s.q.QueryRow(ctx, incrSQL, key, time.Now().UTC().Add(ttl)).Scan(&hits)
	if err != nil {
		return 0, postgres.MapError(err, "throttle_entry", key)
	}
	return hits, nil
}
