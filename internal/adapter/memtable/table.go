// Package memtable is the in-memory key-partitioned table store, used as
// the development stand-in when no database DSN is configured. Records
// live only for the lifetime of the process.
package memtable

import (
	"context"
	"fmt"
	"sync"

	"github.com/execufunction/exf-backend/internal/domain"
)

// Table is a generic partitioned table: records are addressed by
// (partition, row key) and insertion is conditional, so the uniqueness
// guarantees the relational adapter gets from constraints hold here too.
type Table[T any] struct {
	mu         sync.RWMutex
	partitions map[string]map[string]T
}

// NewTable creates an empty Table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{partitions: make(map[string]map[string]T)}
}

// TryInsert stores rec under (partition, key) if the slot is free.
// Returns domain.ErrAlreadyExists when a record is already present.
func (t *Table[T]) TryInsert(partition, key string, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, ok := t.partitions[partition]
	if !ok {
		rows = make(map[string]T)
		t.partitions[partition] = rows
	}
	if _, exists := rows[key]; exists {
		return fmt.Errorf("%s/%s: %w", partition, key, domain.ErrAlreadyExists)
	}
	rows[key] = rec
	return nil
}

// Get returns the record at (partition, key), or domain.ErrNotFound.
func (t *Table[T]) Get(partition, key string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if rec, ok := t.partitions[partition][key]; ok {
		return rec, nil
	}
	var zero T
	return zero, fmt.Errorf("%s/%s: %w", partition, key, domain.ErrNotFound)
}

// Pinger reports the in-memory store as always healthy; it exists so the
// health endpoints work identically in both storage modes.
type Pinger struct{}

// Ping always succeeds.
func (Pinger) Ping(context.Context) error { return nil }
