package job

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	httpinvoice "github.com/MrJamesThe3rd/fieldwork/internal/http/invoice"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/request"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

type Handler struct {
	svc            *job.Service
	defaultTaxRate decimal.Decimal
}

// NewHandler uses defaultTaxRate for invoices whose request omits tax_rate.
func NewHandler(svc *job.Service, defaultTaxRate decimal.Decimal) *Handler {
	return &Handler{svc: svc, defaultTaxRate: defaultTaxRate}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/appointments", h.createAppointment)
	r.Post("/{id}/invoice", h.createInvoice)
}

type createJobRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" validate:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	j, err := h.svc.Create(r.Context(), job.CreateParams{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(j))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := job.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(job.Status(s))
	}

	jobs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(jobs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	j, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(j))
}

type updateStatusRequest struct {
	Status job.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req updateStatusRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	j, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(j))
}

type createAppointmentRequest struct {
	TechnicianID uuid.UUID `json:"technician_id" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createAppointmentRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	appt, err := h.svc.CreateAppointment(r.Context(), id, job.AppointmentParams{
		TechnicianID: req.TechnicianID,
		Start:        req.StartTime,
		End:          req.EndTime,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toAppointmentResponse(appt))
}

type lineItemRequest struct {
	Description string       `json:"description"`
	Quantity    int64        `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
}

type createInvoiceRequest struct {
	LineItems []lineItemRequest `json:"line_items"`
	TaxRate   *decimal.Decimal  `json:"tax_rate,omitempty"`
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createInvoiceRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := billing.InvoiceParams{
		LineItems: make([]billing.LineItemParams, len(req.LineItems)),
		TaxRate:   h.defaultTaxRate,
	}

	if req.TaxRate != nil {
		params.TaxRate = *req.TaxRate
	}

	for i, li := range req.LineItems {
		params.LineItems[i] = billing.LineItemParams{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		}
	}

	inv, err := h.svc.CreateInvoice(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, httpinvoice.ToResponse(inv))
}
