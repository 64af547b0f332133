package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

// Response is the JSON shape of an invoice. Job responses embed it too.
type Response struct {
	ID           uuid.UUID          `json:"id"`
	JobID        uuid.UUID          `json:"job_id"`
	JobTitle     string             `json:"job_title,omitempty"`
	CustomerName string             `json:"customer_name,omitempty"`
	LineItems    []lineItemResponse `json:"line_items"`
	Subtotal     money.Amount       `json:"subtotal"`
	TaxRate      decimal.Decimal    `json:"tax_rate"`
	Tax          money.Amount       `json:"tax"`
	Total        money.Amount       `json:"total"`
	Balance      money.Amount       `json:"balance"`
	Payments     []paymentResponse  `json:"payments"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type lineItemResponse struct {
	ID          uuid.UUID    `json:"id"`
	Description string       `json:"description"`
	Quantity    int64        `json:"quantity"`
	UnitPrice   money.Amount `json:"unit_price"`
	Total       money.Amount `json:"total"`
}

type paymentResponse struct {
	ID        uuid.UUID      `json:"id"`
	InvoiceID uuid.UUID      `json:"invoice_id"`
	Amount    money.Amount   `json:"amount"`
	Method    billing.Method `json:"method"`
	CreatedAt time.Time      `json:"created_at"`
}

type receiptResponse struct {
	Payment paymentResponse `json:"payment"`
	Invoice Response        `json:"invoice"`
}

func ToResponse(inv *billing.Invoice) Response {
	resp := Response{
		ID:           inv.ID,
		JobID:        inv.JobID,
		JobTitle:     inv.JobTitle,
		CustomerName: inv.CustomerName,
		LineItems:    make([]lineItemResponse, len(inv.LineItems)),
		Subtotal:     inv.Subtotal,
		TaxRate:      inv.TaxRate,
		Tax:          inv.Tax,
		Total:        inv.Total,
		Balance:      inv.Balance,
		Payments:     make([]paymentResponse, len(inv.Payments)),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}

	for i, li := range inv.LineItems {
		resp.LineItems[i] = lineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
		}
	}

	for i, p := range inv.Payments {
		resp.Payments[i] = toPaymentResponse(&p)
	}

	return resp
}

func toPaymentResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method,
		CreatedAt: p.CreatedAt,
	}
}

func toResponseList(invs []*billing.Invoice) []Response {
	resp := make([]Response, len(invs))
	for i, inv := range invs {
		resp[i] = ToResponse(inv)
	}

	return resp
}
