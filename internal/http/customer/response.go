package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
)

type customerResponse struct {
	ID        uuid.UUID            `json:"id"`
	Name      string               `json:"name"`
	Phone     string               `json:"phone"`
	Email     string               `json:"email"`
	Address   string               `json:"address"`
	JobCount  int                  `json:"job_count"`
	Jobs      []jobSummaryResponse `json:"jobs,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

type jobSummaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type skippedResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Imported  int                `json:"imported"`
	Customers []customerResponse `json:"customers"`
	Skipped   []skippedResponse  `json:"skipped"`
}

func toResponse(c *customer.Customer) customerResponse {
	resp := customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		JobCount:  c.JobCount,
		CreatedAt: c.CreatedAt,
	}

	for _, j := range c.Jobs {
		resp.Jobs = append(resp.Jobs, jobSummaryResponse{
			ID:        j.ID,
			Title:     j.Title,
			Status:    j.Status,
			CreatedAt: j.CreatedAt,
		})
	}

	return resp
}

func toResponseList(cs []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}

func toImportResponse(result *customer.ImportResult) importResponse {
	resp := importResponse{
		Imported:  len(result.Created),
		Customers: toResponseList(result.Created),
		Skipped:   make([]skippedResponse, 0, len(result.Skipped)),
	}

	for _, s := range result.Skipped {
		resp.Skipped = append(resp.Skipped, skippedResponse{
			Name:   s.Params.Name,
			Email:  s.Params.Email,
			Reason: s.Reason,
		})
	}

	return resp
}
