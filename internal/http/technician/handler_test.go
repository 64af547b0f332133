package technician_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httptechnician "github.com/MrJamesThe3rd/fieldwork/internal/http/technician"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

func newRouter(t *testing.T) (http.Handler, *technician.MockRepository) {
	t.Helper()

	repo := technician.NewMockRepository(gomock.NewController(t))

	r := chi.NewRouter()
	r.Route("/technicians", httptechnician.NewHandler(technician.NewService(repo)).Routes)

	return r, repo
}

func TestHandler_Get(t *testing.T) {
	h, repo := newRouter(t)
	id := uuid.New()
	start := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)

	repo.EXPECT().GetTechnician(gomock.Any(), id).Return(&technician.Technician{ID: id, Name: "Mike Johnson"}, nil)
	repo.EXPECT().ListSlots(gomock.Any(), id).Return([]technician.Slot{
		{AppointmentID: uuid.New(), JobTitle: "HVAC Repair", JobStatus: "Scheduled", Start: start, End: start.Add(2 * time.Hour)},
		{AppointmentID: uuid.New(), JobTitle: "Water Heater", JobStatus: "Done", Start: start.Add(3 * time.Hour), End: start.Add(5 * time.Hour)},
	}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/technicians/"+id.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name             string `json:"name"`
		AppointmentCount int    `json:"appointment_count"`
		Appointments     []struct {
			JobTitle  string    `json:"job_title"`
			StartTime time.Time `json:"start_time"`
		} `json:"appointments"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Mike Johnson", body.Name)
	assert.Equal(t, 2, body.AppointmentCount)
	require.Len(t, body.Appointments, 2)
	assert.Equal(t, "HVAC Repair", body.Appointments[0].JobTitle)
	assert.True(t, start.Equal(body.Appointments[0].StartTime))
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, repo := newRouter(t)
	id := uuid.New()

	repo.EXPECT().GetTechnician(gomock.Any(), id).Return(nil, technician.ErrNotFound)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/technicians/"+id.String()+"/appointments", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error_code":"not_found","message":"Technician not found"}`, rec.Body.String())
}

func TestHandler_Create_RequiresName(t *testing.T) {
	h, _ := newRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/technicians", strings.NewReader(`{"name":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error_code":"validation_failed","message":"Name is required"}`, rec.Body.String())
}
