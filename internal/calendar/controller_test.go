package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	availabilityRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TutorBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const tutorID = int64(7)

var june10 = types.Date{Year: 2024, Month: time.June, Day: 10}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func newController(t *testing.T) *Controller {
	t.Helper()
	clock := fixedClock{now: time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)}
	avail := availabilityRepo.NewMemoryRepository()
	ledger := bookingRepo.NewMemoryRepository()
	cfg := domain.DefaultSlotsConfig()
	log := logger.NewNop()

	require.NoError(t, avail.SetDate(context.Background(), tutorID, june10, []types.TimeString{"09:00", "10:00"}))

	resolver := get_available_slots.NewUseCase(ledger, avail, cfg, nil, log).WithTimeProvider(clock)
	booker := create_booking.NewUseCase(ledger, resolver, locker.NewLocalLocker(), cfg, nil, log).WithTimeProvider(clock)

	return NewController(tutorID, resolver, booker).WithClock(clock)
}

func TestController_SelectAndConfirm(t *testing.T) {
	ctx := context.Background()
	c := newController(t)

	_, err := c.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNoDateSelected)
	assert.ErrorIs(t, c.SelectSlot("09:00"), ErrNoDateSelected)

	slots, err := c.SelectDate(ctx, june10)
	require.NoError(t, err)
	require.Len(t, slots, 12)
	assert.True(t, slots[0].IsOfferable())

	assert.ErrorIs(t, c.SelectSlot("11:00"), ErrSlotNotOffered)
	require.NoError(t, c.SelectSlot("09:00"))

	resp, err := c.Confirm(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)

	st := c.State()
	assert.True(t, st.Selected.IsZero())
	assert.Equal(t, domain.ReasonAlreadyBooked, st.Slots[0].Reason)
	assert.Equal(t, domain.ReasonAvailable, st.Slots[1].Reason)

	_, err = c.Confirm(ctx, 101)
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}

func TestController_ConfirmSurfacesConflict(t *testing.T) {
	ctx := context.Background()
	first := newController(t)

	_, err := first.SelectDate(ctx, june10)
	require.NoError(t, err)
	require.NoError(t, first.SelectSlot("10:00"))

	// Другой клиент занимает слот, пока первый смотрит на устаревший список
	_, err = first.booker.Execute(ctx, &create_booking.Request{
		TutorID: tutorID, StudentID: 202, Date: june10, StartTime: "10:00",
	})
	require.NoError(t, err)

	_, err = first.Confirm(ctx, 101)
	require.ErrorIs(t, err, domain.ErrSlotUnavailable)
	reason, _ := domain.UnavailableReason(err)
	assert.Equal(t, domain.ReasonAlreadyBooked, reason)

	st := first.State()
	assert.Equal(t, err, st.LastError)
	assert.Equal(t, domain.ReasonAlreadyBooked, st.Slots[1].Reason)
}

func TestController_SelectDateResetsSelection(t *testing.T) {
	ctx := context.Background()
	c := newController(t)

	_, err := c.SelectDate(ctx, june10)
	require.NoError(t, err)
	require.NoError(t, c.SelectSlot("09:00"))

	_, err = c.SelectDate(ctx, june10.AddDays(1))
	require.NoError(t, err)
	assert.True(t, c.State().Selected.IsZero())
	assert.ErrorIs(t, c.SelectSlot("09:00"), ErrSlotNotOffered)
}
