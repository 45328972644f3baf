// Command server runs the marketing-site backend: waitlist signup,
// contact intake, ritual check-ins, calendar lookup, and the admin
// export.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/execufunction/exf-backend/internal/app"
)

func main() {
	// .env is a development convenience; absence is not an error.
	godotenv.Load() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
