package billing_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

func TestTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []billing.LineItemParams
		rate         string
		wantSubtotal money.Amount
		wantTax      money.Amount
		wantTotal    money.Amount
	}{
		{
			name: "TwoItemsTenPercent",
			items: []billing.LineItemParams{
				{Description: "Labor", Quantity: 1, UnitPrice: 10000},
				{Description: "Parts", Quantity: 2, UnitPrice: 1500},
			},
			rate:         "0.1",
			wantSubtotal: 13000,
			wantTax:      1300,
			wantTotal:    14300,
		},
		{
			name: "DefaultRate",
			items: []billing.LineItemParams{
				{Description: "Inspection", Quantity: 3, UnitPrice: 8500},
			},
			rate:         "0.08",
			wantSubtotal: 25500,
			wantTax:      2040,
			wantTotal:    27540,
		},
		{
			name: "TaxRoundsToCent",
			items: []billing.LineItemParams{
				{Description: "Filter", Quantity: 1, UnitPrice: 1050},
			},
			rate:         "0.05",
			wantSubtotal: 1050,
			wantTax:      53,
			wantTotal:    1103,
		},
		{
			name: "ZeroRate",
			items: []billing.LineItemParams{
				{Description: "Callout", Quantity: 1, UnitPrice: 11000},
			},
			rate:         "0",
			wantSubtotal: 11000,
			wantTax:      0,
			wantTotal:    11000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subtotal, tax, total := billing.Totals(tt.items, decimal.RequireFromString(tt.rate))

			assert.Equal(t, tt.wantSubtotal, subtotal)
			assert.Equal(t, tt.wantTax, tax)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, subtotal+tax, total)
		})
	}
}

func TestNewInvoice(t *testing.T) {
	jobID := uuid.New()
	inv := billing.NewInvoice(jobID, billing.InvoiceParams{
		LineItems: []billing.LineItemParams{
			{Description: "Labor", Quantity: 1, UnitPrice: 10000},
			{Description: "Parts", Quantity: 2, UnitPrice: 1500},
		},
		TaxRate: decimal.RequireFromString("0.1"),
	})

	assert.Equal(t, jobID, inv.JobID)
	assert.Equal(t, inv.Total, inv.Balance)
	assert.Equal(t, money.Amount(3000), inv.LineItems[1].Total)
	assert.False(t, inv.Settled())
	assert.Equal(t, money.Amount(0), inv.Paid())
}

func TestInvoiceParams_Validate(t *testing.T) {
	item := billing.LineItemParams{Description: "Labor", Quantity: 1, UnitPrice: 100}

	tests := []struct {
		name    string
		params  billing.InvoiceParams
		wantErr error
	}{
		{
			name:   "Valid",
			params: billing.InvoiceParams{LineItems: []billing.LineItemParams{item}, TaxRate: decimal.RequireFromString("0.08")},
		},
		{
			name:   "RateOfOne",
			params: billing.InvoiceParams{LineItems: []billing.LineItemParams{item}, TaxRate: decimal.NewFromInt(1)},
		},
		{
			name:    "NoItems",
			params:  billing.InvoiceParams{TaxRate: decimal.Zero},
			wantErr: billing.ErrNoLineItems,
		},
		{
			name:    "NegativeRate",
			params:  billing.InvoiceParams{LineItems: []billing.LineItemParams{item}, TaxRate: decimal.RequireFromString("-0.01")},
			wantErr: billing.ErrTaxRateOutOfRange,
		},
		{
			name:    "RateAboveOne",
			params:  billing.InvoiceParams{LineItems: []billing.LineItemParams{item}, TaxRate: decimal.RequireFromString("1.5")},
			wantErr: billing.ErrTaxRateOutOfRange,
		},
		{
			name: "ZeroQuantity",
			params: billing.InvoiceParams{LineItems: []billing.LineItemParams{
				{Description: "Labor", Quantity: 0, UnitPrice: 100},
			}},
			wantErr: billing.ErrQuantityNotPositive,
		},
		{
			name: "ZeroPrice",
			params: billing.InvoiceParams{LineItems: []billing.LineItemParams{
				{Description: "Labor", Quantity: 1, UnitPrice: 0},
			}},
			wantErr: billing.ErrUnitPriceNotPositive,
		},
		{
			name: "BlankDescription",
			params: billing.InvoiceParams{LineItems: []billing.LineItemParams{
				{Quantity: 1, UnitPrice: 100},
			}},
			wantErr: billing.ErrDescriptionMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMethod_Valid(t *testing.T) {
	assert.True(t, billing.MethodCard.Valid())
	assert.True(t, billing.MethodCash.Valid())
	assert.True(t, billing.MethodCheck.Valid())
	assert.False(t, billing.Method("bitcoin").Valid())
	assert.False(t, billing.Method("").Valid())
}
