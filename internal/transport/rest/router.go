package rest

import (
	"log/slog"
	"net/http"

	"github.com/execufunction/exf-backend/internal/config"
	"github.com/execufunction/exf-backend/internal/transport/middleware"
)

// RouterDeps bundles the handlers the router mounts.
type RouterDeps struct {
	Waitlist *WaitlistHandler
	Contact  *ContactHandler
	Ritual   *RitualHandler
	Calendar *CalendarHandler
	Export   *ExportHandler
	Health   *HealthHandler
}

// NewRouter builds the HTTP handler tree with the standard middleware
// chain applied: recovery outermost, then request id, logging, CORS.
// Form and calendar responses additionally carry no-store headers.
func NewRouter(deps RouterDeps, cfg config.CORSConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	noStore := middleware.NoStore

	mux.Handle("POST /waitlist", noStore(http.HandlerFunc(deps.Waitlist.Signup)))
	mux.Handle("POST /contact", noStore(http.HandlerFunc(deps.Contact.Submit)))
	mux.Handle("POST /ritual-checkin", noStore(http.HandlerFunc(deps.Ritual.CheckIn)))
	mux.Handle("GET /calendar/next3", noStore(http.HandlerFunc(deps.Calendar.Next3)))
	mux.Handle("GET /context-envelope", noStore(http.HandlerFunc(deps.Calendar.Envelope)))
	mux.HandleFunc("GET /admin/export", deps.Export.Export)
	mux.HandleFunc("GET /health", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg),
	)
	return chain(mux)
}
