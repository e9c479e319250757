package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/app"
	"github.com/m04kA/SMC-TutorBooking/internal/config"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

const (
	tutorID    = "1"
	studentID  = "2"
	strangerID = "3"

	monday   = "2024-06-10"
	saturday = "2024-06-15"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type slotView struct {
	Time      string `json:"time"`
	Offerable bool   `json:"offerable"`
	Reason    string `json:"reason"`
}

type slotsResponse struct {
	OfferableCount int        `json:"offerableCount"`
	Slots          []slotView `json:"slots"`
}

type bookingView struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Metrics.Enabled = true

	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	a, err := app.New(context.Background(), cfg, logger.NewNop(), app.WithClock(fixedClock{now: now}))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return a.Handler()
}

func do(t *testing.T, h http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func slotReason(t *testing.T, h http.Handler, date, slot string) string {
	t.Helper()
	rec := do(t, h, http.MethodGet, "/api/v1/tutors/1/availability?date="+date, "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, s := range decode[slotsResponse](t, rec).Slots {
		if s.Time == slot {
			return s.Reason
		}
	}
	t.Fatalf("slot %s not in catalogue", slot)
	return ""
}

func TestBookingLifecycle(t *testing.T) {
	h := newServer(t)

	// Новый репетитор: расписание пустое
	assert.Equal(t, "outside_availability", slotReason(t, h, monday, "09:00"))

	rec := do(t, h, http.MethodPost, "/api/v1/tutors/1/availability/defaults", tutorID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/tutors/1/availability?date="+monday, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decode[slotsResponse](t, rec)
	require.Len(t, slots.Slots, 12)
	assert.Equal(t, 12, slots.OfferableCount)
	assert.Equal(t, "09:00", slots.Slots[0].Time)
	assert.Equal(t, "20:00", slots.Slots[11].Time)

	// Бронирование
	rec = do(t, h, http.MethodPost, "/api/v1/tutors/1/bookings", studentID, `{"date":"2024-06-10","slot":"9:00 AM"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[bookingView](t, rec)
	assert.Equal(t, "09:00", created.Time)
	assert.Equal(t, "confirmed", created.Status)

	rec = do(t, h, http.MethodPost, "/api/v1/tutors/1/bookings", strangerID, `{"date":"2024-06-10","slot":"09:00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_booked", slotReason(t, h, monday, "09:00"))

	// Просмотр
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/api/v1/tutors/1/bookings/2024-06-10/09:00", strangerID, "").Code)
	rec = do(t, h, http.MethodGet, "/api/v1/tutors/1/bookings/2024-06-10/09:00", studentID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[bookingView](t, rec).ID)

	// Отмена
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPatch, "/api/v1/tutors/1/bookings/2024-06-10/09:00/cancel", strangerID, "").Code)
	rec = do(t, h, http.MethodPatch, "/api/v1/tutors/1/bookings/2024-06-10/09:00/cancel", studentID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "cancelled", decode[bookingView](t, rec).Status)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPatch, "/api/v1/tutors/1/bookings/2024-06-10/09:00/cancel", tutorID, "").Code)

	// Слот снова свободен
	assert.Equal(t, "available", slotReason(t, h, monday, "09:00"))
	rec = do(t, h, http.MethodPost, "/api/v1/tutors/1/bookings", strangerID, `{"date":"2024-06-10","slot":"09:00"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Списки
	rec = do(t, h, http.MethodGet, "/api/v1/tutors/1/bookings?includeInactive=true", tutorID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]bookingView](t, rec), 2)

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/api/v1/tutors/1/bookings", studentID, "").Code)

	rec = do(t, h, http.MethodGet, "/api/v1/users/2/bookings", studentID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]bookingView](t, rec))

	rec = do(t, h, http.MethodGet, "/api/v1/users/2/bookings?includeInactive=true", studentID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]bookingView](t, rec), 1)
}

func TestCreateBooking_Rejections(t *testing.T) {
	h := newServer(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/tutors/1/availability/defaults", tutorID, "").Code)

	tests := []struct {
		name   string
		userID string
		body   string
		code   int
	}{
		{name: "unauthenticated", userID: "", body: `{"date":"2024-06-10","slot":"10:00"}`, code: http.StatusUnauthorized},
		{name: "weekend", userID: studentID, body: `{"date":"2024-06-15","slot":"10:00"}`, code: http.StatusUnprocessableEntity},
		{name: "past date", userID: studentID, body: `{"date":"2024-06-07","slot":"10:00"}`, code: http.StatusUnprocessableEntity},
		{name: "before day start", userID: studentID, body: `{"date":"2024-06-10","slot":"08:00"}`, code: http.StatusBadRequest},
		{name: "not in catalogue", userID: studentID, body: `{"date":"2024-06-10","slot":"09:30"}`, code: http.StatusBadRequest},
		{name: "own slot", userID: tutorID, body: `{"date":"2024-06-10","slot":"10:00"}`, code: http.StatusBadRequest},
		{name: "bad date", userID: studentID, body: `{"date":"10/06/2024","slot":"10:00"}`, code: http.StatusBadRequest},
		{name: "bad time", userID: studentID, body: `{"date":"2024-06-10","slot":"ten"}`, code: http.StatusBadRequest},
		{name: "unknown field", userID: studentID, body: `{"date":"2024-06-10","slot":"10:00","notes":"x"}`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/tutors/1/bookings", tt.userID, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestAvailabilityManagement(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPut, "/api/v1/tutors/1/availability/"+saturday, studentID, `{"slots":["10:00"]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/tutors/1/availability/"+saturday, tutorID, `{"slots":["10:00","10:00"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/tutors/1/availability/"+saturday, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"label":"10:00 AM"`)

	assert.Equal(t, "available", slotReason(t, h, saturday, "10:00"))
	assert.Equal(t, "outside_availability", slotReason(t, h, saturday, "11:00"))

	rec = do(t, h, http.MethodPut, "/api/v1/tutors/1/availability/"+saturday, tutorID, `{"slots":["10:15"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Недельное правило и удаление исключения
	rec = do(t, h, http.MethodPut, "/api/v1/tutors/1/weekly-availability/saturday", tutorID, `{"slots":["11:00"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "outside_availability", slotReason(t, h, saturday, "11:00"))

	rec = do(t, h, http.MethodDelete, "/api/v1/tutors/1/availability/"+saturday, tutorID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "available", slotReason(t, h, saturday, "11:00"))
	assert.Equal(t, "outside_availability", slotReason(t, h, saturday, "10:00"))

	rec = do(t, h, http.MethodPut, "/api/v1/tutors/1/weekly-availability/someday", tutorID, `{"slots":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpsEndpoints(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	do(t, h, http.MethodGet, "/api/v1/tutors/1/availability?date="+monday, "", "")
	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tutorbooking_slot_resolutions_total 1")
	assert.Contains(t, rec.Body.String(), `route="/api/v1/tutors/{tutorId}/availability"`)

	rec = do(t, h, http.MethodGet, "/api/v1/tutors/1/availability", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
