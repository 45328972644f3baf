// Package app wires configuration, storage, services, and the HTTP
// server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/adapter/memtable"
	"github.com/execufunction/exf-backend/internal/adapter/postgres"
	pgcontact "github.com/execufunction/exf-backend/internal/adapter/postgres/contact"
	pgritual "github.com/execufunction/exf-backend/internal/adapter/postgres/ritual"
	pgthrottle "github.com/execufunction/exf-backend/internal/adapter/postgres/throttle"
	pgwaitlist "github.com/execufunction/exf-backend/internal/adapter/postgres/waitlist"
	"github.com/execufunction/exf-backend/internal/config"
	"github.com/execufunction/exf-backend/internal/domain"
	"github.com/execufunction/exf-backend/internal/service/calendar"
	"github.com/execufunction/exf-backend/internal/service/contact"
	"github.com/execufunction/exf-backend/internal/service/export"
	"github.com/execufunction/exf-backend/internal/service/ritual"
	"github.com/execufunction/exf-backend/internal/service/waitlist"
	"github.com/execufunction/exf-backend/internal/throttle"
	"github.com/execufunction/exf-backend/internal/transport/rest"
)

// The storage interfaces both backends satisfy.
type waitlistStore interface {
	GetByDedupKey(ctx context.Context, partition, dedupKey string) (*domain.SignupRecord, error)
	Insert(ctx context.Context, rec *domain.SignupRecord) error
}

type contactStore interface {
	Insert(ctx context.Context, rec *domain.ContactRecord) error
}

type ritualStore interface {
	Insert(ctx context.Context, entry *domain.RitualEntry) error
}

type storagePinger interface {
	Ping(ctx context.Context) error
}

// Run is the application entry point. It loads configuration, connects
// storage (PostgreSQL when a DSN is configured, in-memory tables
// otherwise), builds the services and HTTP handler tree, and serves
// until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("database", cfg.HasDatabase()),
	)

	var (
		waitlistRepo  waitlistStore
		contactRepo   contactStore
		ritualRepo    ritualStore
		throttleStore throttle.EntryStore
		pinger        storagePinger
		exportHandler *rest.ExportHandler
	)

	if cfg.HasDatabase() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		wr := pgwaitlist.New(pool)
		cr := pgcontact.New(pool)
		waitlistRepo = wr
		contactRepo = cr
		ritualRepo = pgritual.New(pool)
		throttleStore = pgthrottle.New(pool)
		pinger = pool
		exportHandler = rest.NewExportHandler(export.NewService(logger, wr, cr), logger)
	} else {
		logger.Warn("no DATABASE_DSN configured, using in-memory storage; admin export disabled")
		waitlistRepo = memtable.NewWaitlistRepo()
		contactRepo = memtable.NewContactRepo()
		ritualRepo = memtable.NewRitualRepo()
		memStore := throttle.NewMemoryStore(cfg.Throttle.SweepInterval)
		defer memStore.Stop()
		throttleStore = memStore
		pinger = memtable.Pinger{}
		exportHandler = rest.NewExportHandler(nil, logger)
	}

	gate := throttle.NewGate(throttleStore, cfg.Throttle.Limit, cfg.Throttle.Window, logger)

	deps := rest.RouterDeps{
		Waitlist: rest.NewWaitlistHandler(waitlist.NewService(logger, waitlistRepo, gate), logger),
		Contact:  rest.NewContactHandler(contact.NewService(logger, contactRepo), logger),
		Ritual:   rest.NewRitualHandler(ritual.NewService(logger, ritualRepo), logger),
		Calendar: rest.NewCalendarHandler(
			calendar.NewService(logger, cfg.Calendar.ICSURL, cfg.Calendar.Timezone, cfg.Calendar.FetchTimeout),
			logger),
		Export: exportHandler,
		Health: rest.NewHealthHandler(pinger, BuildVersion()),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      rest.NewRouter(deps, cfg.CORS, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
