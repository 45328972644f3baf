package throttle

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

type failingStore struct{}

func (failingStore) Incr(context.Context, string, time.Duration) (int, error) {
	return 0, errors.New("connection refused")
}

func newTestGate(t *testing.T, limit int) (*Gate, *MemoryStore, *time.Time) {
	t.Helper()

	store := NewMemoryStore(time.Minute)
	t.Cleanup(store.Stop)

	current := time.Date(2025, 5, 1, 12, 0, 30, 0, time.UTC)
	store.now = func() time.Time { return current }

	gate := NewGate(store, limit, time.Minute, slog.Default())
	gate.now = func() time.Time { return current }

	return gate, store, &current
}

func TestGate_AdmitsUpToLimit(t *testing.T) {
	t.Parallel()

	gate, _, _ := newTestGate(t, 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := gate.Admit(ctx, "user@example.com", "1.2.3.4"); err != nil {
			t.Fatalf("request %d should be admitted, got %v", i+1, err)
		}
	}

	err := gate.Admit(ctx, "user@example.com", "1.2.3.4")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("6th request: got %v, want ErrRateLimited", err)
	}
}

func TestGate_NewBucketAdmits(t *testing.T) {
	t.Parallel()

	gate, _, current := newTestGate(t, 1)
	ctx := context.Background()

	if err := gate.Admit(ctx, "user@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if err := gate.Admit(ctx, "user@example.com", "1.2.3.4"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("second request in bucket: got %v, want ErrRateLimited", err)
	}

	// Cross into the next minute bucket.
	*current = current.Add(time.Minute)

	if err := gate.Admit(ctx, "user@example.com", "1.2.3.4"); err != nil {
		t.Errorf("request in new bucket should be admitted, got %v", err)
	}
}

func TestGate_IdentitiesIndependent(t *testing.T) {
	t.Parallel()

	gate, _, _ := newTestGate(t, 1)
	ctx := context.Background()

	if err := gate.Admit(ctx, "a@example.com", "1.2.3.4"); err != nil {
		t.Fatalf("first identity: %v", err)
	}
	if err := gate.Admit(ctx, "b@example.com", "1.2.3.4"); err != nil {
		t.Errorf("different identity should not share a bucket, got %v", err)
	}
	if err := gate.Admit(ctx, "a@example.com", "5.6.7.8"); err != nil {
		t.Errorf("different ip should not share a bucket, got %v", err)
	}
}

func TestGate_FailsOpenOnStoreError(t *testing.T) {
	t.Parallel()

	gate := NewGate(failingStore{}, 1, time.Minute, slog.Default())

	for i := 0; i < 3; i++ {
		if err := gate.Admit(context.Background(), "user@example.com", "1.2.3.4"); err != nil {
			t.Errorf("request %d: gate must fail open on store errors, got %v", i+1, err)
		}
	}
}
