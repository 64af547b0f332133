package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	activityStore "github.com/MrJamesThe3rd/fieldwork/internal/activity/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	billingStore "github.com/MrJamesThe3rd/fieldwork/internal/billing/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	"github.com/MrJamesThe3rd/fieldwork/internal/money"
	"github.com/MrJamesThe3rd/fieldwork/internal/schedule"
)

const (
	overlapConstraint        = "appointments_no_overlap"
	oneAppointmentConstraint = "appointments_job_id_key"
	oneInvoiceConstraint     = "invoices_job_id_key"
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

const selectJobColumns = `
	j.id, j.customer_id, c.name, j.title, j.description, j.status, j.created_at, j.updated_at,
	a.id, a.technician_id, t.name, a.start_time, a.end_time, a.created_at,
	i.id, i.subtotal, i.tax, i.total, i.balance, i.tax_rate, i.created_at, i.updated_at
`

const jobJoins = `
	FROM jobs j
	JOIN customers c ON c.id = j.customer_id
	LEFT JOIN appointments a ON a.job_id = j.id
	LEFT JOIN technicians t ON t.id = a.technician_id
	LEFT JOIN invoices i ON i.job_id = j.id
`

// scanJob reads a row selected with selectJobColumns. The appointment and
// invoice are attached only when present; invoice line items and payments
// are not loaded.
func scanJob(s scanner) (*job.Job, error) {
	var (
		j      job.Job
		status string

		apptID, techID         uuid.NullUUID
		techName               sql.NullString
		apptStart, apptEnd     sql.NullTime
		apptCreated            sql.NullTime
		invID                  uuid.NullUUID
		subtotal, tax          sql.NullInt64
		total, balance         sql.NullInt64
		taxRate                decimal.NullDecimal
		invCreated, invUpdated sql.NullTime
	)

	if err := s.Scan(
		&j.ID, &j.CustomerID, &j.CustomerName, &j.Title, &j.Description, &status, &j.CreatedAt, &j.UpdatedAt,
		&apptID, &techID, &techName, &apptStart, &apptEnd, &apptCreated,
		&invID, &subtotal, &tax, &total, &balance, &taxRate, &invCreated, &invUpdated,
	); err != nil {
		return nil, err
	}

	j.Status = job.Status(status)

	if apptID.Valid {
		j.Appointment = &job.Appointment{
			ID:             apptID.UUID,
			JobID:          j.ID,
			TechnicianID:   techID.UUID,
			TechnicianName: techName.String,
			StartTime:      apptStart.Time,
			EndTime:        apptEnd.Time,
			CreatedAt:      apptCreated.Time,
		}
	}

	if invID.Valid {
		j.Invoice = &billing.Invoice{
			ID:           invID.UUID,
			JobID:        j.ID,
			JobTitle:     j.Title,
			CustomerName: j.CustomerName,
			Subtotal:     cents(subtotal),
			Tax:          cents(tax),
			Total:        cents(total),
			Balance:      cents(balance),
			TaxRate:      taxRate.Decimal,
			CreatedAt:    invCreated.Time,
			UpdatedAt:    invUpdated.Time,
		}
	}

	return &j, nil
}

func cents(n sql.NullInt64) money.Amount {
	return money.FromCents(n.Int64)
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	query := `SELECT ` + selectJobColumns + jobJoins + ` WHERE j.id = $1`

	j, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrNotFound
		}

		return nil, fmt.Errorf("getting job: %w", err)
	}

	if j.Invoice != nil {
		inv, err := billingStore.LoadByJob(ctx, s.db, j.ID)
		if err != nil {
			return nil, err
		}

		j.Invoice = inv
	}

	activities, err := activityStore.ListForJob(ctx, s.db, j.ID)
	if err != nil {
		return nil, err
	}

	j.Activities = activities

	return j, nil
}

func (s *Store) ListJobs(ctx context.Context, filter job.ListFilter) ([]*job.Job, error) {
	query := `SELECT ` + selectJobColumns + jobJoins

	var args []any

	if filter.Status != nil {
		query += ` WHERE j.status = $1`

		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY j.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*job.Job{}

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}

		jobs = append(jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating jobs: %w", err)
	}

	return jobs, nil
}

type tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (job.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning job tx: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

func (t *tx) CreateJob(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (customer_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		j.CustomerID,
		j.Title,
		j.Description,
		string(j.Status),
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating job: %w", err)
	}

	return nil
}

func (t *tx) LockJob(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	query := `SELECT ` + selectJobColumns + jobJoins + ` WHERE j.id = $1 FOR UPDATE OF j`

	j, err := scanJob(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrNotFound
		}

		return nil, fmt.Errorf("locking job: %w", err)
	}

	return j, nil
}

func (t *tx) LockTechnician(ctx context.Context, technicianID uuid.UUID) error {
	key := database.AdvisoryKey("technician", technicianID)
	if _, err := t.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquiring technician lock: %w", err)
	}

	return nil
}

func (t *tx) TechnicianBookings(ctx context.Context, technicianID uuid.UUID) ([]schedule.Booking, error) {
	query := `
		SELECT technician_id, start_time, end_time
		FROM appointments
		WHERE technician_id = $1
		ORDER BY start_time ASC
	`

	rows, err := t.tx.QueryContext(ctx, query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("listing technician bookings: %w", err)
	}
	defer rows.Close()

	var bookings []schedule.Booking

	for rows.Next() {
		var b schedule.Booking
		if err := rows.Scan(&b.TechnicianID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}

	return bookings, nil
}

func (t *tx) CreateAppointment(ctx context.Context, a *job.Appointment) error {
	query := `
		INSERT INTO appointments (job_id, technician_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query, a.JobID, a.TechnicianID, a.StartTime, a.EndTime).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		switch {
		case database.IsExclusionViolation(err, overlapConstraint):
			return job.ErrOverlap
		case database.IsUniqueViolation(err, oneAppointmentConstraint):
			return job.ErrHasAppointment
		}

		return fmt.Errorf("creating appointment: %w", err)
	}

	return nil
}

func (t *tx) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	if err := billingStore.Insert(ctx, t.tx, inv); err != nil {
		if database.IsUniqueViolation(err, oneInvoiceConstraint) {
			return job.ErrHasInvoice
		}

		return err
	}

	return nil
}

func (t *tx) SetStatus(ctx context.Context, id uuid.UUID, status job.Status) error {
	query := `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, string(status), id); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (t *tx) AppendActivity(ctx context.Context, a *activity.Activity) error {
	return activityStore.Append(ctx, t.tx, a)
}
