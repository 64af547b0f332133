package technician

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

type technicianResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	AppointmentCount int            `json:"appointment_count"`
	Appointments     []slotResponse `json:"appointments,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type slotResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"job_id"`
	JobTitle  string    `json:"job_title"`
	JobStatus string    `json:"job_status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func toResponse(t *technician.Technician) technicianResponse {
	return technicianResponse{
		ID:               t.ID,
		Name:             t.Name,
		AppointmentCount: t.AppointmentCount,
		CreatedAt:        t.CreatedAt,
	}
}

func toResponseList(ts []*technician.Technician) []technicianResponse {
	resp := make([]technicianResponse, len(ts))
	for i, t := range ts {
		resp[i] = toResponse(t)
	}

	return resp
}

func toSlotResponses(slots []technician.Slot) []slotResponse {
	resp := make([]slotResponse, len(slots))
	for i, s := range slots {
		resp[i] = slotResponse{
			ID:        s.AppointmentID,
			JobID:     s.JobID,
			JobTitle:  s.JobTitle,
			JobStatus: s.JobStatus,
			StartTime: s.Start,
			EndTime:   s.End,
		}
	}

	return resp
}
