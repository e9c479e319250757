package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	tutorID    = int64(7)
	studentID  = int64(101)
	strangerID = int64(555)
)

var key = domain.SlotKey{
	TutorID:   tutorID,
	Date:      types.Date{Year: 2024, Month: time.June, Day: 10},
	StartTime: "09:00",
}

func seeded(t *testing.T) (*Service, *bookingRepo.MemoryRepository) {
	t.Helper()
	repo := bookingRepo.NewMemoryRepository()
	_, err := repo.Put(context.Background(), &domain.Booking{
		TutorID: key.TutorID, StudentID: studentID, Date: key.Date, StartTime: key.StartTime,
		DurationMinutes: 60, Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)
	return NewService(repo, locker.NewLocalLocker(), logger.NewNop()), repo
}

func TestCancel_ByTutor(t *testing.T) {
	svc, repo := seeded(t)

	resp, err := svc.Cancel(context.Background(), key, tutorID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, tutorID, *resp.CancelledBy)

	// Второй раз отменять нечего
	_, err = svc.Cancel(context.Background(), key, tutorID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	active, err := repo.GetActiveByTutorAndDate(context.Background(), tutorID, key.Date)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCancel_ByStudent(t *testing.T) {
	svc, _ := seeded(t)

	resp, err := svc.Cancel(context.Background(), key, studentID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	_, err = svc.Cancel(context.Background(), key, studentID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_StrangerCannotProbeExistence(t *testing.T) {
	svc, _ := seeded(t)

	_, errExisting := svc.Cancel(context.Background(), key, strangerID)
	assert.ErrorIs(t, errExisting, ErrAccessDenied)

	empty := key
	empty.StartTime = "10:00"
	_, errMissing := svc.Cancel(context.Background(), empty, strangerID)
	assert.ErrorIs(t, errMissing, ErrAccessDenied)

	assert.Equal(t, errExisting, errMissing)
}

func TestCancel_TutorWithoutBooking(t *testing.T) {
	svc := NewService(bookingRepo.NewMemoryRepository(), locker.NewLocalLocker(), logger.NewNop())

	_, err := svc.Cancel(context.Background(), key, tutorID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_InvalidInput(t *testing.T) {
	svc, _ := seeded(t)

	bad := key
	bad.StartTime = "nine"
	_, err := svc.Cancel(context.Background(), bad, tutorID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Cancel(context.Background(), key, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Get(ctx context.Context, k domain.SlotKey) (*domain.Booking, error) {
	args := m.Called(ctx, k)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Cancel(ctx context.Context, k domain.SlotKey, by int64) (*domain.Booking, error) {
	args := m.Called(ctx, k, by)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByStudentID(ctx context.Context, id int64, includeInactive bool) ([]*domain.Booking, error) {
	args := m.Called(ctx, id, includeInactive)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockRepo) GetByTutorWithFilter(ctx context.Context, f domain.TutorBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type busyLocker struct{}

func (busyLocker) WithSlotLock(context.Context, domain.SlotKey, func(context.Context) error) error {
	return locker.ErrLockNotAcquired
}

func TestCancel_RepositoryAndLockErrors(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Get", mock.Anything, key).Return(nil, errors.New("connection reset"))

	svc := NewService(repo, locker.NewLocalLocker(), logger.NewNop())
	_, err := svc.Cancel(context.Background(), key, tutorID)
	assert.ErrorIs(t, err, ErrInternal)

	svc = NewService(&mockRepo{}, busyLocker{}, logger.NewNop())
	_, err = svc.Cancel(context.Background(), key, tutorID)
	assert.ErrorIs(t, err, ErrSlotBusy)
}

func TestGet_AccessRules(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	resp, err := svc.Get(ctx, key, tutorID)
	require.NoError(t, err)
	assert.Equal(t, studentID, resp.StudentID)
	assert.Equal(t, "9:00 AM", resp.Label)

	_, err = svc.Get(ctx, key, studentID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, key, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	empty := key
	empty.StartTime = "10:00"
	_, err = svc.Get(ctx, empty, tutorID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = svc.Get(ctx, empty, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Отмененное бронирование остаётся видимым для истории
	_, err = svc.Cancel(ctx, key, studentID)
	require.NoError(t, err)
	resp, err = svc.Get(ctx, key, studentID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.NotNil(t, resp.CancelledAt)
}

func TestGetStudentBookings(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	list, err := svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{RequesterID: studentID, StudentID: studentID})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)

	_, err = svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{RequesterID: tutorID, StudentID: studentID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Cancel(ctx, key, studentID)
	require.NoError(t, err)

	list, err = svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{RequesterID: studentID, StudentID: studentID})
	require.NoError(t, err)
	assert.Empty(t, list.Bookings)
	assert.NotNil(t, list.Bookings)

	list, err = svc.GetStudentBookings(ctx, &models.GetStudentBookingsRequest{
		RequesterID: studentID, StudentID: studentID, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)
}

func TestGetTutorBookings(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	from := key.Date
	to := key.Date.AddDays(6)
	list, err := svc.GetTutorBookings(ctx, &models.GetTutorBookingsRequest{
		RequesterID: tutorID, TutorID: tutorID, StartDate: &from, EndDate: &to,
	})
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)

	_, err = svc.GetTutorBookings(ctx, &models.GetTutorBookingsRequest{RequesterID: studentID, TutorID: tutorID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetTutorBookings(ctx, &models.GetTutorBookingsRequest{
		RequesterID: tutorID, TutorID: tutorID, StartDate: &to, EndDate: &from,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestGetTutorBookings_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByTutorWithFilter", mock.Anything, domain.TutorBookingsFilter{TutorID: tutorID}).
		Return([]*domain.Booking(nil), errors.New("timeout"))

	svc := NewService(repo, locker.NewLocalLocker(), logger.NewNop())
	_, err := svc.GetTutorBookings(context.Background(), &models.GetTutorBookingsRequest{RequesterID: tutorID, TutorID: tutorID})
	assert.ErrorIs(t, err, ErrInternal)
	repo.AssertExpectations(t)
}
