package job

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	httpinvoice "github.com/MrJamesThe3rd/fieldwork/internal/http/invoice"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
)

type jobResponse struct {
	ID           uuid.UUID             `json:"id"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Status       job.Status            `json:"status"`
	Appointment  *appointmentResponse  `json:"appointment"`
	Invoice      *httpinvoice.Response `json:"invoice"`
	Activities   []activityResponse    `json:"activities,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type appointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	JobID          uuid.UUID `json:"job_id"`
	TechnicianID   uuid.UUID `json:"technician_id"`
	TechnicianName string    `json:"technician_name,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CreatedAt      time.Time `json:"created_at"`
}

type activityResponse struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(j *job.Job) jobResponse {
	resp := jobResponse{
		ID:           j.ID,
		CustomerID:   j.CustomerID,
		CustomerName: j.CustomerName,
		Title:        j.Title,
		Description:  j.Description,
		Status:       j.Status,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}

	if j.Appointment != nil {
		resp.Appointment = new(toAppointmentResponse(j.Appointment))
	}

	if j.Invoice != nil {
		resp.Invoice = new(httpinvoice.ToResponse(j.Invoice))
	}

	if len(j.Activities) > 0 {
		resp.Activities = toActivityResponses(j.Activities)
	}

	return resp
}

func toResponseList(jobs []*job.Job) []jobResponse {
	resp := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		resp[i] = toResponse(j)
	}

	return resp
}

func toAppointmentResponse(a *job.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		TechnicianID:   a.TechnicianID,
		TechnicianName: a.TechnicianName,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		CreatedAt:      a.CreatedAt,
	}
}

func toActivityResponses(as []activity.Activity) []activityResponse {
	resp := make([]activityResponse, len(as))
	for i, a := range as {
		resp[i] = activityResponse{
			ID:        a.ID,
			Action:    a.Action,
			Details:   a.Details,
			CreatedAt: a.CreatedAt,
		}
	}

	return resp
}
