package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
	"github.com/MrJamesThe3rd/fieldwork/internal/metrics"
	"github.com/MrJamesThe3rd/fieldwork/internal/schedule"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=job
type Repository interface {
	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context, filter ListFilter) ([]*Job, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a unit of work on one job. Every write and the activity entry
// describing it commit together or not at all.
type Tx interface {
	CreateJob(ctx context.Context, j *Job) error
	// LockJob reads the job with its appointment and invoice under a row lock.
	LockJob(ctx context.Context, id uuid.UUID) (*Job, error)
	// LockTechnician serializes bookings for one technician until commit.
	LockTechnician(ctx context.Context, technicianID uuid.UUID) error
	TechnicianBookings(ctx context.Context, technicianID uuid.UUID) ([]schedule.Booking, error)
	CreateAppointment(ctx context.Context, a *Appointment) error
	CreateInvoice(ctx context.Context, inv *billing.Invoice) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	AppendActivity(ctx context.Context, a *activity.Activity) error
	Commit() error
	Rollback() error
}

type CustomerChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type TechnicianFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*technician.Technician, error)
}

type Service struct {
	repo        Repository
	customers   CustomerChecker
	technicians TechnicianFinder
}

func NewService(repo Repository, customers CustomerChecker, technicians TechnicianFinder) *Service {
	return &Service{repo: repo, customers: customers, technicians: technicians}
}

type CreateParams struct {
	CustomerID  uuid.UUID
	Title       string
	Description string
}

type ListFilter struct {
	Status *Status
}

type AppointmentParams struct {
	TechnicianID uuid.UUID
	Start        time.Time
	End          time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Job, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)

	if params.Title == "" {
		return nil, apperr.Validation("Title is required")
	}

	if params.Description == "" {
		return nil, apperr.Validation("Description is required")
	}

	exists, err := s.customers.Exists(ctx, params.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("checking customer: %w", err)
	}

	if !exists {
		return nil, ErrCustomerNotFound
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create job: %w", err)
	}
	defer tx.Rollback()

	j := &Job{
		CustomerID:  params.CustomerID,
		Title:       params.Title,
		Description: params.Description,
		Status:      StatusNew,
	}
	if err := tx.CreateJob(ctx, j); err != nil {
		return nil, err
	}

	entry := activity.JobCreated(j.ID, j.Title)
	if err := tx.AppendActivity(ctx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create job: %w", err)
	}

	j.Activities = []activity.Activity{entry}

	slog.InfoContext(ctx, "job created", "job_id", j.ID, "customer_id", j.CustomerID)

	return j, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.repo.GetJob(ctx, id)
}

// List returns jobs newest first, optionally restricted to one status.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Job, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Validation("Invalid status %q", *filter.Status)
	}

	return s.repo.ListJobs(ctx, filter)
}

// UpdateStatus moves the job to status. Scheduled and Done require an
// appointment; every other transition is accepted as requested.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Job, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Invalid status %q", status)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.LockJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if status.requiresAppointment() && j.Appointment == nil {
		return nil, apperr.Precondition("Cannot mark job as %s without an appointment", status)
	}

	if err := tx.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	entry := activity.StatusChanged(id, string(status))
	if err := tx.AppendActivity(ctx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}

	slog.InfoContext(ctx, "job status changed", "job_id", id, "from", j.Status, "to", status)

	return s.repo.GetJob(ctx, id)
}

// CreateAppointment books a technician for the job and moves it to
// Scheduled. The technician's existing bookings are read and the new one
// written while holding the technician lock, so two concurrent requests
// cannot both pass the overlap check.
func (s *Service) CreateAppointment(ctx context.Context, jobID uuid.UUID, params AppointmentParams) (*Appointment, error) {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin appointment: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.LockJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.Appointment != nil {
		return nil, ErrHasAppointment
	}

	tech, err := s.technicians.Get(ctx, params.TechnicianID)
	if err != nil {
		return nil, err
	}

	window := schedule.Interval{Start: params.Start, End: params.End}
	if !window.Valid() {
		return nil, ErrInvalidWindow
	}

	if err := tx.LockTechnician(ctx, tech.ID); err != nil {
		return nil, err
	}

	bookings, err := tx.TechnicianBookings(ctx, tech.ID)
	if err != nil {
		return nil, err
	}

	if clash, found := schedule.FirstConflict(tech.ID, window, bookings); found {
		metrics.SchedulingConflict()
		slog.InfoContext(ctx, "appointment rejected",
			"job_id", jobID,
			"technician_id", tech.ID,
			"clashes_with", clash.Start.Format(time.RFC3339)+"/"+clash.End.Format(time.RFC3339),
		)

		return nil, conflictFor(tech)
	}

	appt := &Appointment{
		JobID:          jobID,
		TechnicianID:   tech.ID,
		StartTime:      params.Start,
		EndTime:        params.End,
		TechnicianName: tech.Name,
	}
	if err := tx.CreateAppointment(ctx, appt); err != nil {
		if errors.Is(err, ErrOverlap) {
			metrics.SchedulingConflict()
			return nil, conflictFor(tech)
		}

		return nil, err
	}

	entry := activity.Scheduled(jobID, tech.Name, params.Start, params.End)
	if err := tx.AppendActivity(ctx, &entry); err != nil {
		return nil, err
	}

	if err := tx.SetStatus(ctx, jobID, StatusScheduled); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit appointment: %w", err)
	}

	metrics.AppointmentScheduled()
	slog.InfoContext(ctx, "job scheduled", "job_id", jobID, "technician_id", tech.ID, "appointment_id", appt.ID)

	return appt, nil
}

func conflictFor(tech *technician.Technician) error {
	return apperr.Conflict("Technician %s has a conflicting appointment in this time window", tech.Name)
}

// CreateInvoice bills a Done job and moves it to Invoiced.
func (s *Service) CreateInvoice(ctx context.Context, jobID uuid.UUID, params billing.InvoiceParams) (*billing.Invoice, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin invoice: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.LockJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.Status != StatusDone {
		return nil, ErrNotDone
	}

	if j.Invoice != nil {
		return nil, ErrHasInvoice
	}

	inv := billing.NewInvoice(jobID, params)
	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.SetStatus(ctx, jobID, StatusInvoiced); err != nil {
		return nil, err
	}

	entry := activity.InvoiceCreated(jobID, inv.Total)
	if err := tx.AppendActivity(ctx, &entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit invoice: %w", err)
	}

	inv.JobTitle = j.Title
	inv.CustomerName = j.CustomerName

	metrics.InvoiceCreated(inv.Total.Cents())
	slog.InfoContext(ctx, "invoice created", "job_id", jobID, "invoice_id", inv.ID, "total", inv.Total.String())

	return inv, nil
}
