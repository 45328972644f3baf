package throttle

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process EntryStore. It is best-effort only: state is
// local to one instance and resets on restart, so it degrades to
// per-instance throttling when several instances run behind a balancer.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	stop    chan struct{}

	now func() time.Time
}

type memEntry struct {
	hits      int
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore with a background sweep that drops
// expired entries every sweepInterval. Call Stop on shutdown.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memEntry),
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	go s.sweep(sweepInterval)
	return s
}

// Stop terminates the background sweep goroutine.
func (s *MemoryStore) Stop() {
	close(s.stop)
}

// Incr increments the counter for key, resetting it when the previous
// entry has expired. It never fails.
func (s *MemoryStore) Incr(_ context.Context, key string, ttl time.Duration) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = e
	}
	e.hits++
	return e.hits, nil
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for key, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
