package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

var (
	ErrNotFound             = apperr.NotFound("Invoice not found")
	ErrAmountNotPositive    = apperr.Validation("Payment amount must be positive")
	ErrNoLineItems          = apperr.Validation("At least one line item is required")
	ErrTaxRateOutOfRange    = apperr.Validation("Tax rate must be between 0 and 1")
	ErrQuantityNotPositive  = apperr.Validation("Quantity must be a positive integer")
	ErrUnitPriceNotPositive = apperr.Validation("Unit price must be positive")
	ErrDescriptionMissing   = apperr.Validation("Line item description is required")
)

// Method is how a payment was tendered.
type Method string

const (
	MethodCard  Method = "card"
	MethodCash  Method = "cash"
	MethodCheck Method = "check"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodCash, MethodCheck:
		return true
	}

	return false
}

type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   money.Amount
	Total       money.Amount
}

// Invoice is the bill for exactly one job. Balance starts at Total and only
// decreases as payments are recorded.
type Invoice struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	LineItems []LineItem
	Subtotal  money.Amount
	Tax       money.Amount
	Total     money.Amount
	Balance   money.Amount
	TaxRate   decimal.Decimal
	Payments  []Payment
	CreatedAt time.Time
	UpdatedAt time.Time

	// Loaded via JOIN
	JobTitle     string
	CustomerName string
}

// Paid is the sum of payments applied so far.
func (inv *Invoice) Paid() money.Amount {
	return inv.Total - inv.Balance
}

func (inv *Invoice) Settled() bool {
	return inv.Balance == 0
}

type Payment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    money.Amount
	Method    Method
	CreatedAt time.Time
}

type LineItemParams struct {
	Description string
	Quantity    int64
	UnitPrice   money.Amount
}

type InvoiceParams struct {
	LineItems []LineItemParams
	TaxRate   decimal.Decimal
}

func (p InvoiceParams) Validate() error {
	if len(p.LineItems) == 0 {
		return ErrNoLineItems
	}

	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrTaxRateOutOfRange
	}

	for _, li := range p.LineItems {
		if li.Description == "" {
			return ErrDescriptionMissing
		}

		if li.Quantity <= 0 {
			return ErrQuantityNotPositive
		}

		if li.UnitPrice <= 0 {
			return ErrUnitPriceNotPositive
		}
	}

	return nil
}

// Totals returns subtotal = Σ quantity × unit price, tax = subtotal × rate
// rounded to the cent, and total = subtotal + tax.
func Totals(items []LineItemParams, rate decimal.Decimal) (subtotal, tax, total money.Amount) {
	for _, li := range items {
		subtotal += li.UnitPrice.Times(li.Quantity)
	}

	tax = subtotal.ApplyRate(rate)

	return subtotal, tax, subtotal + tax
}

// NewInvoice builds an unsaved invoice for the job with its balance equal to
// its total.
func NewInvoice(jobID uuid.UUID, p InvoiceParams) *Invoice {
	subtotal, tax, total := Totals(p.LineItems, p.TaxRate)

	items := make([]LineItem, len(p.LineItems))
	for i, li := range p.LineItems {
		items[i] = LineItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Total:       li.UnitPrice.Times(li.Quantity),
		}
	}

	return &Invoice{
		JobID:     jobID,
		LineItems: items,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
		Balance:   total,
		TaxRate:   p.TaxRate,
		Payments:  []Payment{},
	}
}
