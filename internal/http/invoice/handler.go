package invoice

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/export"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/request"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

type Handler struct {
	svc    *billing.Service
	export *export.Service
}

func NewHandler(svc *billing.Service, exportSvc *export.Service) *Handler {
	return &Handler{svc: svc, export: exportSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/statement", h.statement)
	r.Post("/{id}/payments", h.createPayment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(invs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(inv))
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.export.Statement(r.Context(), &buf, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"statement_%s.txt\"", id))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write statement", "error", err)
	}
}

type createPaymentRequest struct {
	Amount money.Amount   `json:"amount"`
	Method billing.Method `json:"method"`
}

func (h *Handler) createPayment(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req createPaymentRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	receipt, err := h.svc.RecordPayment(r.Context(), id, billing.PaymentParams{
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, receiptResponse{
		Payment: toPaymentResponse(receipt.Payment),
		Invoice: ToResponse(receipt.Invoice),
	})
}
