package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

var invoiceColumns = []string{
	"id", "job_id", "title", "name", "subtotal", "tax", "total", "balance", "tax_rate", "created_at", "updated_at",
}

func expectChildren(mock sqlmock.Sqlmock, invoiceID uuid.UUID, now time.Time) {
	mock.ExpectQuery("FROM line_items").
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "description", "quantity", "unit_price", "total"}).
			AddRow(uuid.New().String(), invoiceID.String(), "Labor", int64(1), int64(10000), int64(10000)))
	mock.ExpectQuery("FROM payments").
		WithArgs(invoiceID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_id", "amount", "method", "created_at"}).
			AddRow(uuid.New().String(), invoiceID.String(), int64(3000), "cash", now))
}

func TestStore_GetInvoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	jobID := uuid.New()
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM invoices i").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(id.String(), jobID.String(), "Leak", "Jane", int64(10000), int64(1000), int64(11000), int64(8000), "0.1000", now, now))
	expectChildren(mock, id, now)

	inv, err := store.New(db).GetInvoice(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, jobID, inv.JobID)
	assert.Equal(t, "Jane", inv.CustomerName)
	assert.Equal(t, money.Amount(11000), inv.Total)
	assert.Equal(t, money.Amount(8000), inv.Balance)
	assert.True(t, decimal.RequireFromString("0.1").Equal(inv.TaxRate))
	require.Len(t, inv.LineItems, 1)
	require.Len(t, inv.Payments, 1)
	assert.Equal(t, billing.MethodCash, inv.Payments[0].Method)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetInvoice_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM invoices i").WillReturnError(sql.ErrNoRows)

	_, err = store.New(db).GetInvoice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, billing.ErrNotFound)
}

func TestStore_LoadByJob_NoInvoice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("WHERE i.job_id = ").WillReturnError(sql.ErrNoRows)

	inv, err := store.LoadByJob(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestStore_PaymentTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	jobID := uuid.New()
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE OF i").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(id.String(), jobID.String(), "Leak", "Jane", int64(10000), int64(1000), int64(11000), int64(8000), "0.1", now, now))
	expectChildren(mock, id, now)
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(id, int64(8000), "card").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New().String(), now))
	mock.ExpectExec("UPDATE invoices").
		WithArgs(int64(0), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE jobs").
		WithArgs("Paid", jobID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO job_activities").
		WithArgs(jobID, activity.ActionPaymentCompleted, "Invoice paid in full").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New().String(), now))
	mock.ExpectCommit()

	ctx := context.Background()

	tx, err := store.New(db).Begin(ctx)
	require.NoError(t, err)

	inv, err := tx.LockInvoice(ctx, id)
	require.NoError(t, err)

	p := &billing.Payment{InvoiceID: inv.ID, Amount: inv.Balance, Method: billing.MethodCard}
	require.NoError(t, tx.CreatePayment(ctx, p))
	assert.NotEqual(t, uuid.Nil, p.ID)

	require.NoError(t, tx.UpdateBalance(ctx, inv.ID, 0))
	require.NoError(t, tx.MarkJobPaid(ctx, inv.JobID))

	entry := activity.PaymentCompleted(inv.JobID)
	require.NoError(t, tx.AppendActivity(ctx, &entry))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	jobID := uuid.New()
	invoiceID := uuid.New()
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	inv := billing.NewInvoice(jobID, billing.InvoiceParams{
		LineItems: []billing.LineItemParams{
			{Description: "Labor", Quantity: 1, UnitPrice: 10000},
			{Description: "Parts", Quantity: 2, UnitPrice: 1500},
		},
		TaxRate: decimal.RequireFromString("0.1"),
	})

	mock.ExpectQuery("INSERT INTO invoices").
		WithArgs(jobID, int64(13000), int64(1300), int64(14300), int64(14300), "0.1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(invoiceID.String(), now, now))
	mock.ExpectQuery("INSERT INTO line_items").
		WithArgs(invoiceID, 0, "Labor", int64(1), int64(10000), int64(10000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectQuery("INSERT INTO line_items").
		WithArgs(invoiceID, 1, "Parts", int64(2), int64(1500), int64(3000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	require.NoError(t, store.Insert(context.Background(), db, inv))

	assert.Equal(t, invoiceID, inv.ID)
	assert.Equal(t, invoiceID, inv.LineItems[1].InvoiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
