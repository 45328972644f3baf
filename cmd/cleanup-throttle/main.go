// Command cleanup-throttle deletes expired signup throttle counters.
//
// Usage:
//
//	cleanup-throttle
//
// Requires DATABASE_DSN environment variable to be set. Intended to run
// from cron; the serving path never reads expired rows, this just keeps
// the table small.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load() //nolint:errcheck

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx, "DELETE FROM throttle_entries WHERE expires_at < now()")
	if err != nil {
		log.Fatalf("cleanup throttle entries: %v", err)
	}

	fmt.Printf("Deleted %d expired throttle entries.\n", tag.RowsAffected())
}
