package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

type Handler struct {
	db      Pinger
	version string
	now     func() time.Time
}

func NewHandler(db Pinger, version string) *Handler {
	return &Handler{db: db, version: version, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.health)
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.ErrorContext(r.Context(), "database unreachable", "error", err)

		resp.Status = "unavailable"
		respond.JSON(w, http.StatusServiceUnavailable, resp)

		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
