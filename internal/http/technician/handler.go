package technician

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldwork/internal/http/request"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

type Handler struct {
	svc *technician.Service
}

func NewHandler(svc *technician.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/appointments", h.appointments)
}

type createTechnicianRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTechnicianRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(t))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(ts))
}

// get returns the technician with their schedule embedded.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	t, slots, err := h.svc.Schedule(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := toResponse(t)
	resp.Appointments = toSlotResponses(slots)
	resp.AppointmentCount = len(slots)

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) appointments(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	_, slots, err := h.svc.Schedule(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSlotResponses(slots))
}
