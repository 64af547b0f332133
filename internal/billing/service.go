package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/metrics"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context) ([]*Invoice, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work against one invoice. LockInvoice must be called
// before any write so concurrent payments are applied one at a time.
type Tx interface {
	LockInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	CreatePayment(ctx context.Context, p *Payment) error
	UpdateBalance(ctx context.Context, invoiceID uuid.UUID, balance money.Amount) error
	MarkJobPaid(ctx context.Context, jobID uuid.UUID) error
	AppendActivity(ctx context.Context, a *activity.Activity) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type PaymentParams struct {
	Amount money.Amount
	Method Method // Defaults to card
}

// Receipt is the recorded payment together with the invoice as it stands
// after the payment was applied.
type Receipt struct {
	Payment *Payment
	Invoice *Invoice
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.ListInvoices(ctx)
}

// RecordPayment applies a payment to the invoice's balance. A payment that
// brings the balance to exactly zero marks the job Paid.
func (s *Service) RecordPayment(ctx context.Context, invoiceID uuid.UUID, params PaymentParams) (*Receipt, error) {
	if params.Method == "" {
		params.Method = MethodCard
	}

	if !params.Method.Valid() {
		return nil, apperr.Validation("Invalid payment method %q", params.Method)
	}

	if params.Amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if params.Amount > inv.Balance {
		return nil, apperr.Validation("Payment amount (%s) exceeds remaining balance (%s)", params.Amount, inv.Balance)
	}

	payment := &Payment{
		InvoiceID: inv.ID,
		Amount:    params.Amount,
		Method:    params.Method,
	}
	if err := tx.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	remaining := inv.Balance - params.Amount
	if err := tx.UpdateBalance(ctx, inv.ID, remaining); err != nil {
		return nil, err
	}

	var entry activity.Activity

	settled := remaining == 0
	if settled {
		if err := tx.MarkJobPaid(ctx, inv.JobID); err != nil {
			return nil, err
		}

		entry = activity.PaymentCompleted(inv.JobID)
	} else {
		entry = activity.PaymentReceived(inv.JobID, params.Amount, remaining)
	}

	if err := tx.AppendActivity(ctx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	metrics.PaymentRecorded(string(params.Method), params.Amount.Cents(), settled)
	slog.InfoContext(ctx, "payment recorded",
		"invoice_id", inv.ID,
		"job_id", inv.JobID,
		"amount", params.Amount.String(),
		"remaining", remaining.String(),
	)

	updated, err := s.repo.GetInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("reloading invoice: %w", err)
	}

	return &Receipt{Payment: payment, Invoice: updated}, nil
}
