package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/execufunction/exf-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func sampleRecord() *domain.SignupRecord {
	return &domain.SignupRecord{
		ID:        uuid.New(),
		Partition: "2025-05",
		DedupKey:  domain.Fingerprint("user@example.com"),
		Email:     "user@example.com",
		Tags:      []string{"landing"},
		Consent:   true,
		CreatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepo_GetByDedupKey(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(columns).AddRow(
					rec.ID, rec.Partition, rec.DedupKey, rec.Email,
					rec.UTMSource, rec.UTMMedium, rec.UTMCampaign,
					rec.Tags, rec.Referrer, rec.Consent, rec.CreatedAt,
				)
				mock.ExpectQuery(`SELECT .+ FROM waitlist_entries`).
					WithArgs(rec.DedupKey, rec.Partition).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .+ FROM waitlist_entries`).
					WithArgs(rec.DedupKey, rec.Partition).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)
			repo := New(mock)

			got, err := repo.GetByDedupKey(context.Background(), rec.Partition, rec.DedupKey)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Email != rec.Email {
					t.Errorf("email = %q, want %q", got.Email, rec.Email)
				}
				if got.DedupKey != rec.DedupKey {
					t.Errorf("dedup key = %q, want %q", got.DedupKey, rec.DedupKey)
				}
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestRepo_Insert(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO waitlist_entries`).
			WithArgs(rec.ID, rec.Partition, rec.DedupKey, rec.Email,
				rec.UTMSource, rec.UTMMedium, rec.UTMCampaign,
				rec.Tags, rec.Referrer, rec.Consent, rec.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		if err := New(mock).Insert(context.Background(), rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})

	t.Run("unique violation maps to ErrAlreadyExists", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(`INSERT INTO waitlist_entries`).
			WithArgs(rec.ID, rec.Partition, rec.DedupKey, rec.Email,
				rec.UTMSource, rec.UTMMedium, rec.UTMCampaign,
				rec.Tags, rec.Referrer, rec.Consent, rec.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := New(mock).Insert(context.Background(), rec)
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("error = %v, want ErrAlreadyExists", err)
		}
	})
}

func TestRepo_ListByMonths(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	mock := newMock(t)

	rows := pgxmock.NewRows(columns).AddRow(
		rec.ID, rec.Partition, rec.DedupKey, rec.Email,
		rec.UTMSource, rec.UTMMedium, rec.UTMCampaign,
		rec.Tags, rec.Referrer, rec.Consent, rec.CreatedAt,
	)
	// partition IN (...) expands to one placeholder per month.
	mock.ExpectQuery(`SELECT .+ FROM waitlist_entries`).
		WithArgs("2025-04", "2025-05").
		WillReturnRows(rows)

	got, err := New(mock).ListByMonths(context.Background(), []string{"2025-04", "2025-05"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Email != rec.Email {
		t.Errorf("unexpected result: %+v", got)
	}
}
