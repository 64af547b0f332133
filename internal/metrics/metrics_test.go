package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldwork/internal/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	return string(body)
}

func TestInstrument_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Instrument)
	r.Get("/jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jobs/abc", nil))

	body := scrape(t)
	assert.Contains(t, body, `fieldwork_http_requests_total{method="GET",route="/jobs/{id}",status="418"}`)
}

func TestDomainCounters(t *testing.T) {
	metrics.AppointmentScheduled()
	metrics.SchedulingConflict()
	metrics.InvoiceCreated(14300)
	metrics.PaymentRecorded("cash", 5000, false)

	body := scrape(t)
	assert.Contains(t, body, "fieldwork_scheduling_appointments_total")
	assert.Contains(t, body, "fieldwork_scheduling_conflicts_total")
	assert.Contains(t, body, "fieldwork_billing_invoices_total")
	assert.Contains(t, body, `fieldwork_billing_payments_total{method="cash",settled="false"}`)
}
