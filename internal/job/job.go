package job

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
)

var (
	ErrNotFound         = apperr.NotFound("Job not found")
	ErrHasAppointment   = apperr.Conflict("Job already has an appointment")
	ErrHasInvoice       = apperr.Conflict("Job already has an invoice")
	ErrNotDone          = apperr.Precondition("Job must be Done before creating an invoice")
	ErrInvalidWindow    = apperr.Validation("End time must be after start time")
	ErrCustomerNotFound = apperr.NotFound("Customer not found")

	// ErrOverlap is returned by the store when the database rejects an
	// appointment that overlaps one already held by the technician.
	ErrOverlap = apperr.Conflict("appointment overlaps an existing booking")
)

// Status represents where a job is in its lifecycle.
type Status string

const (
	StatusNew       Status = "New"
	StatusScheduled Status = "Scheduled"
	StatusDone      Status = "Done"
	StatusInvoiced  Status = "Invoiced"
	StatusPaid      Status = "Paid"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusNew, StatusScheduled, StatusDone, StatusInvoiced, StatusPaid}

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusScheduled, StatusDone, StatusInvoiced, StatusPaid:
		return true
	}

	return false
}

// requiresAppointment reports whether a job may only enter s once it has
// been booked.
func (s Status) requiresAppointment() bool {
	return s == StatusScheduled || s == StatusDone
}

// Job is the aggregate tying a customer's request to its appointment,
// invoice and activity log.
type Job struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Loaded via JOIN
	CustomerName string

	Appointment *Appointment
	Invoice     *billing.Invoice
	Activities  []activity.Activity // Loaded by Get only, oldest first
}

type Appointment struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	TechnicianID uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time

	TechnicianName string // Loaded via JOIN
}
