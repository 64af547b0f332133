package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/request"
	"github.com/MrJamesThe3rd/fieldwork/internal/http/respond"
	"github.com/MrJamesThe3rd/fieldwork/internal/importer"
)

// maxUploadBytes caps customer list uploads.
const maxUploadBytes = 10 << 20

type Handler struct {
	svc    *customer.Service
	parser *importer.Parser
}

func NewHandler(svc *customer.Service, parser *importer.Parser) *Handler {
	return &Handler{svc: svc, parser: parser}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/import", h.importCSV)
}

type createCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := request.Decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Register(r.Context(), customer.CreateParams{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.BadRequest(w, "Failed to parse form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		if errors.Is(err, importer.ErrUnknownFormat) {
			respond.BadRequest(w, "Unrecognized customer list: expected name, phone, email and address columns")
			return
		}

		respond.BadRequest(w, "Failed to read CSV file")

		return
	}

	result, err := h.svc.ImportBatch(r.Context(), importer.Params(rows))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	status := http.StatusOK
	if len(result.Created) > 0 {
		status = http.StatusCreated
	}

	respond.JSON(w, status, toImportResponse(result))
}
