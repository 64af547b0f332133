package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	activityStore "github.com/MrJamesThe3rd/fieldwork/internal/activity/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.job_id, j.title, c.name, i.subtotal, i.tax, i.total, i.balance, i.tax_rate,
	i.created_at, i.updated_at
`

const invoiceJoins = `
	FROM invoices i
	JOIN jobs j ON j.id = i.job_id
	JOIN customers c ON c.id = j.customer_id
`

func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	if err := s.Scan(
		&inv.ID, &inv.JobID, &inv.JobTitle, &inv.CustomerName,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.Balance, &inv.TaxRate,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &inv, nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return loadInvoice(ctx, s.db, "i.id = $1", id, false)
}

// LoadByJob returns the job's invoice with line items and payments, or nil if
// the job has not been invoiced.
func LoadByJob(ctx context.Context, q database.Querier, jobID uuid.UUID) (*billing.Invoice, error) {
	inv, err := loadInvoice(ctx, q, "i.job_id = $1", jobID, false)
	if errors.Is(err, billing.ErrNotFound) {
		return nil, nil
	}

	return inv, err
}

func loadInvoice(ctx context.Context, q database.Querier, where string, arg uuid.UUID, lock bool) (*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + invoiceJoins + ` WHERE ` + where
	if lock {
		query += ` FOR UPDATE OF i`
	}

	inv, err := scanInvoice(q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	if err := loadChildren(ctx, q, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func loadChildren(ctx context.Context, q database.Querier, inv *billing.Invoice) error {
	itemRows, err := q.QueryContext(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, total
		FROM line_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`, inv.ID)
	if err != nil {
		return fmt.Errorf("listing line items: %w", err)
	}
	defer itemRows.Close()

	inv.LineItems = []billing.LineItem{}

	for itemRows.Next() {
		var li billing.LineItem
		if err := itemRows.Scan(&li.ID, &li.InvoiceID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total); err != nil {
			return fmt.Errorf("scanning line item: %w", err)
		}

		inv.LineItems = append(inv.LineItems, li)
	}

	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("iterating line items: %w", err)
	}

	paymentRows, err := q.QueryContext(ctx, `
		SELECT id, invoice_id, amount, method, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at ASC, id ASC
	`, inv.ID)
	if err != nil {
		return fmt.Errorf("listing payments: %w", err)
	}
	defer paymentRows.Close()

	inv.Payments = []billing.Payment{}

	for paymentRows.Next() {
		var (
			p      billing.Payment
			method string
		)

		if err := paymentRows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &method, &p.CreatedAt); err != nil {
			return fmt.Errorf("scanning payment: %w", err)
		}

		p.Method = billing.Method(method)
		inv.Payments = append(inv.Payments, p)
	}

	if err := paymentRows.Err(); err != nil {
		return fmt.Errorf("iterating payments: %w", err)
	}

	return nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + invoiceJoins + ` ORDER BY i.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	invoices := []*billing.Invoice{}

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	// Children are loaded after the cursor is released so the connection is
	// free for the follow-up queries.
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	rows.Close()

	for _, inv := range invoices {
		if err := loadChildren(ctx, s.db, inv); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

// Insert writes the invoice and its line items and fills in their IDs.
func Insert(ctx context.Context, q database.Querier, inv *billing.Invoice) error {
	query := `
		INSERT INTO invoices (job_id, subtotal, tax, total, balance, tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		inv.JobID,
		inv.Subtotal,
		inv.Tax,
		inv.Total,
		inv.Balance,
		inv.TaxRate,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	itemQuery := `
		INSERT INTO line_items (invoice_id, position, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range inv.LineItems {
		li := &inv.LineItems[i]
		li.InvoiceID = inv.ID

		if err := q.QueryRowContext(ctx, itemQuery,
			inv.ID, i, li.Description, li.Quantity, li.UnitPrice, li.Total,
		).Scan(&li.ID); err != nil {
			return fmt.Errorf("creating line item: %w", err)
		}
	}

	return nil
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (billing.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

// LockInvoice reads the invoice under a row lock held until commit.
func (t *tx) LockInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return loadInvoice(ctx, t.tx, "i.id = $1", id, true)
}

func (t *tx) CreatePayment(ctx context.Context, p *billing.Payment) error {
	query := `
		INSERT INTO payments (invoice_id, amount, method, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	if err := t.tx.QueryRowContext(ctx, query, p.InvoiceID, p.Amount, string(p.Method)).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (t *tx) UpdateBalance(ctx context.Context, invoiceID uuid.UUID, balance money.Amount) error {
	query := `
		UPDATE invoices
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, balance, invoiceID); err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	return nil
}

func (t *tx) MarkJobPaid(ctx context.Context, jobID uuid.UUID) error {
	query := `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, string(job.StatusPaid), jobID); err != nil {
		return fmt.Errorf("marking job paid: %w", err)
	}

	return nil
}

func (t *tx) AppendActivity(ctx context.Context, a *activity.Activity) error {
	return activityStore.Append(ctx, t.tx, a)
}
