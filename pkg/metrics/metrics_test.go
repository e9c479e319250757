package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBooking(t *testing.T) {
	m := New("tutorbooking")

	m.RecordBooking("created")
	m.RecordBooking("created")
	m.RecordBooking("already_booked")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("already_booked")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordBooking("created")
		m.RecordResolution()
		m.ObserveHTTPRequest("GET", "/healthz", 200, 0.01)
	})
}

func TestHandler(t *testing.T) {
	m := New("tutorbooking")
	m.RecordResolution()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tutorbooking_slot_resolutions_total 1")
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New("tutorbooking")

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/tutors/{tutorId}/bookings", http.StatusConflict, 0.02)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/tutors/{tutorId}/bookings", "409"),
	))
}
