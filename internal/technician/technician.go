package technician

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
)

var (
	ErrNotFound     = apperr.NotFound("Technician not found")
	ErrNameRequired = apperr.Validation("Name is required")
)

type Technician struct {
	ID               uuid.UUID
	Name             string
	CreatedAt        time.Time
	AppointmentCount int
}

// Slot is one appointment on a technician's schedule.
type Slot struct {
	AppointmentID uuid.UUID
	JobID         uuid.UUID
	JobTitle      string
	JobStatus     string
	Start         time.Time
	End           time.Time
}
