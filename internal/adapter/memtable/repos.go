package memtable

import (
	"context"

	"github.com/execufunction/exf-backend/internal/domain"
)

// WaitlistRepo adapts a Table to the waitlist service's store interface.
type WaitlistRepo struct {
	table *Table[*domain.SignupRecord]
}

// NewWaitlistRepo creates an empty in-memory waitlist repository.
func NewWaitlistRepo() *WaitlistRepo {
	return &WaitlistRepo{table: NewTable[*domain.SignupRecord]()}
}

// GetByDedupKey returns the signup record under (partition, dedupKey),
// or domain.ErrNotFound.
func (r *WaitlistRepo) GetByDedupKey(_ context.Context, partition, dedupKey string) (*domain.SignupRecord, error) {
	return r.table.Get(partition, dedupKey)
}

// Insert stores a new signup record; domain.ErrAlreadyExists on collision.
func (r *WaitlistRepo) Insert(_ context.Context, rec *domain.SignupRecord) error {
	return r.table.TryInsert(rec.Partition, rec.DedupKey, rec)
}

// ContactRepo adapts a Table to the contact service's store interface.
type ContactRepo struct {
	table *Table[*domain.ContactRecord]
}

// NewContactRepo creates an empty in-memory contact repository.
func NewContactRepo() *ContactRepo {
	return &ContactRepo{table: NewTable[*domain.ContactRecord]()}
}

// Insert stores a new contact message.
func (r *ContactRepo) Insert(_ context.Context, rec *domain.ContactRecord) error {
	return r.table.TryInsert(rec.Partition, rec.RowKey, rec)
}

// RitualRepo adapts a Table to the ritual service's store interface.
type RitualRepo struct {
	table *Table[*domain.RitualEntry]
}

// NewRitualRepo creates an empty in-memory ritual repository.
func NewRitualRepo() *RitualRepo {
	return &RitualRepo{table: NewTable[*domain.RitualEntry]()}
}

// Insert stores a new check-in entry.
func (r *RitualRepo) Insert(_ context.Context, entry *domain.RitualEntry) error {
	return r.table.TryInsert(entry.Partition, entry.RowKey, entry)
}
