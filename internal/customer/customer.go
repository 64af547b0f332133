package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
)

var (
	ErrNotFound   = apperr.NotFound("Customer not found")
	ErrEmailTaken = apperr.Conflict("Customer with this email already exists")
)

// Customer is immutable once registered.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time

	JobCount int
	Jobs     []JobSummary // Loaded by Get only
}

// JobSummary is the slice of a job shown on the customer's page.
type JobSummary struct {
	ID        uuid.UUID
	Title     string
	Status    string
	CreatedAt time.Time
}
