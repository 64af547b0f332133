package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/money"
)

const (
	ActionJobCreated       = "Job Created"
	ActionStatusChanged    = "Status Changed"
	ActionJobScheduled     = "Job Scheduled"
	ActionInvoiceCreated   = "Invoice Created"
	ActionPaymentReceived  = "Payment Received"
	ActionPaymentCompleted = "Payment Completed"
)

// windowLayout is used when describing appointment windows.
const windowLayout = "Jan 2, 2006 15:04 MST"

// Activity is an append-only audit entry attached to a job.
type Activity struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Action    string
	Details   string
	CreatedAt time.Time
}

func New(jobID uuid.UUID, action, details string) Activity {
	return Activity{JobID: jobID, Action: action, Details: details}
}

func JobCreated(jobID uuid.UUID, title string) Activity {
	return New(jobID, ActionJobCreated, "Job created: "+title)
}

func StatusChanged(jobID uuid.UUID, status string) Activity {
	return New(jobID, ActionStatusChanged, "Status changed to "+status)
}

func Scheduled(jobID uuid.UUID, technician string, start, end time.Time) Activity {
	return New(jobID, ActionJobScheduled, fmt.Sprintf("Scheduled with %s from %s to %s",
		technician, start.Format(windowLayout), end.Format(windowLayout)))
}

func InvoiceCreated(jobID uuid.UUID, total money.Amount) Activity {
	return New(jobID, ActionInvoiceCreated, "Invoice created for "+total.String())
}

func PaymentReceived(jobID uuid.UUID, amount, remaining money.Amount) Activity {
	return New(jobID, ActionPaymentReceived,
		fmt.Sprintf("Payment of %s received. Remaining balance: %s", amount, remaining))
}

func PaymentCompleted(jobID uuid.UUID) Activity {
	return New(jobID, ActionPaymentCompleted, "Invoice paid in full")
}
