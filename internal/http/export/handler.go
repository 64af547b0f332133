package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldwork/internal/export"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
)

type Handler struct {
	svc *export.Service
	now func() time.Time
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/statements", h.statements)
}

// statements downloads a zip of invoice statements. ?open=true limits it to
// invoices with an outstanding balance.
func (h *Handler) statements(w http.ResponseWriter, r *http.Request) {
	filter := export.Filter{}

	if s := r.URL.Query().Get("open"); s != "" {
		open, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, "open must be true or false")
			return
		}

		filter.OpenOnly = open
	}

	var buf bytes.Buffer

	items, err := h.svc.Archive(r.Context(), &buf, filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"statements_%s.zip\"", h.now().Format("20060102")))
	w.Header().Set("X-Statement-Count", strconv.Itoa(len(items)))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write archive", "error", err)
	}
}
