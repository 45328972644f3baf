package rest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/execufunction/exf-backend/internal/domain"
)

// exportService defines the minimal interface needed by ExportHandler.
type exportService interface {
	Export(ctx context.Context, table, from, to string) ([]string, [][]string, error)
}

// ExportHandler serves the admin CSV export. svc is nil when the server
// runs without durable storage; the endpoint then answers 503.
type ExportHandler struct {
	svc exportService
	log *slog.Logger
	now func() time.Time
}

// NewExportHandler creates an ExportHandler. svc may be nil.
func NewExportHandler(svc exportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		svc: svc,
		log: logger.With("handler", "export"),
		now: time.Now,
	}
}

// Export handles GET /admin/export?table=waitlist&from=2025-01&to=2025-03.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.svc == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_not_configured")
		return
	}

	q := r.URL.Query()
	table := q.Get("table")

	header, rows, err := h.svc.Export(r.Context(), table, q.Get("from"), q.Get("to"))
	if err != nil {
		var ie *domain.InputError
		if errors.As(err, &ie) {
			writeInputError(w, ie)
			return
		}
		h.log.ErrorContext(r.Context(), "export failed",
			slog.String("table", table),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}

	filename := fmt.Sprintf("%s-export-%s.csv", table, h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write(header) //nolint:errcheck
	for _, row := range rows {
		cw.Write(row) //nolint:errcheck
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.ErrorContext(r.Context(), "export stream interrupted",
			slog.String("error", err.Error()))
	}
}
