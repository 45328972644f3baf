// Package throttle rate-limits repeat submissions per identity within a
// fixed time bucket. It is a deterrent, not an enforcement mechanism: when
// the backing store is unavailable the gate fails open and admits the
// request, prioritizing signup availability over strictness.
package throttle

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

// EntryStore counts hits for a throttle key. Incr must be atomic so that
// concurrent requests in the same bucket observe distinct counts; entries
// expire after ttl.
type EntryStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int, error)
}

// Gate admits or rejects requests per (identity, ip, time bucket).
type Gate struct {
	store  EntryStore
	limit  int
	window time.Duration
	log    *slog.Logger
	now    func() time.Time
}

// NewGate creates a Gate allowing limit requests per identity per window.
func NewGate(store EntryStore, limit int, window time.Duration, log *slog.Logger) *Gate {
	return &Gate{
		store:  store,
		limit:  limit,
		window: window,
		log:    log.With("component", "throttle"),
		now:    time.Now,
	}
}

// Admit checks the request against the current bucket. It returns
// domain.ErrRateLimited when the bucket is exhausted, and nil both on
// admission and on store failure (fail open).
func (g *Gate) Admit(ctx context.Context, identity, ip string) error {
	bucket := g.now().UTC().Truncate(g.window).Unix()
	key := domain.Fingerprint(identity, ip, strconv.FormatInt(bucket, 10))

	// Entries live slightly past the bucket so a hit at the bucket's edge
	// still counts against it.
	hits, err := g.store.Incr(ctx, key, g.window+time.Second)
	if err != nil {
		g.log.WarnContext(ctx, "throttle store unavailable, admitting request",
			slog.String("error", err.Error()))
		return nil
	}

	if hits > g.limit {
		return domain.ErrRateLimited
	}
	return nil
}
