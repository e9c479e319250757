package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/config"
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	availabilityRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestNew_InMemory(t *testing.T) {
	a, err := New(context.Background(), config.Default(), logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &bookingRepo.MemoryRepository{}, a.Bookings)
	assert.IsType(t, &availabilityRepo.MemoryRepository{}, a.Availability)
	assert.IsType(t, &locker.LocalLocker{}, a.Locker)
	assert.Nil(t, a.Metrics)
	assert.NotNil(t, a.Handler())
}

func TestNew_InvalidSlots(t *testing.T) {
	cfg := config.Default()
	cfg.Slots.DurationMinutes = 7

	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNew_TimezoneClock(t *testing.T) {
	cfg := config.Default()
	cfg.Slots.Timezone = "Asia/Tokyo"

	a, err := New(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "Asia/Tokyo", a.Clock.Now().Location().String())
}

func TestCalendarFlow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 12, 30, 0, 0, time.UTC)

	a, err := New(ctx, config.Default(), logger.NewNop(), WithClock(fixedClock{now: now}))
	require.NoError(t, err)
	defer a.Close()

	_, err = a.AvailabilityService.ApplyDefaults(ctx, &models.ApplyDefaultsRequest{RequesterID: 1, TutorID: 1})
	require.NoError(t, err)

	date, err := types.ParseDate("2024-06-10")
	require.NoError(t, err)

	ctrl := a.Calendar(1)
	slots, err := ctrl.SelectDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	assert.Equal(t, domain.ReasonPastCutoff, slots[3].Reason) // 12:00
	assert.Equal(t, domain.ReasonAvailable, slots[4].Reason)  // 13:00

	require.NoError(t, ctrl.SelectSlot("13:00"))
	resp, err := ctrl.Confirm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.StudentID)

	slots = ctrl.State().Slots
	assert.Equal(t, domain.ReasonAlreadyBooked, slots[4].Reason)
}
