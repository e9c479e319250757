package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const tutorID = int64(7)

// 2024-06-10 - понедельник
var monday = types.Date{Year: 2024, Month: time.June, Day: 10}

func newService() (*Service, *availabilityRepo.MemoryRepository) {
	repo := availabilityRepo.NewMemoryRepository()
	return NewService(repo, domain.DefaultSlotsConfig(), logger.NewNop()), repo
}

func TestSetDate_NormalizesAndReplaces(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	resp, err := svc.SetDate(ctx, &models.SetDateRequest{
		RequesterID: tutorID, TutorID: tutorID, Date: monday,
		Slots: []string{"10:00 AM", "9:00 AM", "09:00"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, models.SlotView{Time: "09:00", Label: "9:00 AM"}, resp.Slots[0])

	stored, err := repo.Get(ctx, tutorID, monday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, stored)

	// Повторный вызов заменяет набор целиком
	_, err = svc.SetDate(ctx, &models.SetDateRequest{
		RequesterID: tutorID, TutorID: tutorID, Date: monday, Slots: []string{"14:00"},
	})
	require.NoError(t, err)
	got, err := svc.Get(ctx, tutorID, monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotView{{Time: "14:00", Label: "2:00 PM"}}, got.Slots)
}

func TestSetDate_Rejects(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.SetDate(ctx, &models.SetDateRequest{RequesterID: 8, TutorID: tutorID, Date: monday})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetDate(ctx, &models.SetDateRequest{RequesterID: tutorID, TutorID: tutorID, Date: monday, Slots: []string{"09:30"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetDate(ctx, &models.SetDateRequest{RequesterID: tutorID, TutorID: tutorID, Date: monday, Slots: []string{"noon"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetDate(ctx, &models.SetDateRequest{RequesterID: tutorID, TutorID: tutorID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyDefaults(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	resp, err := svc.ApplyDefaults(ctx, &models.ApplyDefaultsRequest{RequesterID: tutorID, TutorID: tutorID})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 5)

	for i := 0; i < 7; i++ {
		date := monday.AddDays(i)
		slots, err := repo.Get(ctx, tutorID, date)
		require.NoError(t, err)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			assert.Empty(t, slots, date.String())
			continue
		}
		assert.Len(t, slots, 12, date.String())
	}

	_, err = svc.ApplyDefaults(ctx, &models.ApplyDefaultsRequest{RequesterID: 1, TutorID: tutorID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetWeeklyAndClearDate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.SetWeekly(ctx, &models.SetWeeklyRequest{
		RequesterID: tutorID, TutorID: tutorID, Weekday: time.Monday, Slots: []string{"18:00"},
	})
	require.NoError(t, err)

	_, err = svc.SetDate(ctx, &models.SetDateRequest{RequesterID: tutorID, TutorID: tutorID, Date: monday})
	require.NoError(t, err)

	got, err := svc.Get(ctx, tutorID, monday)
	require.NoError(t, err)
	assert.Empty(t, got.Slots)

	require.NoError(t, svc.ClearDate(ctx, &models.ClearDateRequest{RequesterID: tutorID, TutorID: tutorID, Date: monday}))

	got, err = svc.Get(ctx, tutorID, monday)
	require.NoError(t, err)
	assert.Equal(t, []models.SlotView{{Time: "18:00", Label: "6:00 PM"}}, got.Slots)

	_, err = svc.SetWeekly(ctx, &models.SetWeeklyRequest{RequesterID: tutorID, TutorID: tutorID, Weekday: 9})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseWeekday(t *testing.T) {
	for input, expected := range map[string]time.Weekday{
		"monday": time.Monday,
		"Tue":    time.Tuesday,
		"0":      time.Sunday,
		" SAT ":  time.Saturday,
	} {
		got, err := ParseWeekday(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}

	_, err := ParseWeekday("someday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error) {
	args := m.Called(ctx, tutorID, date)
	return args.Get(0).([]types.TimeString), args.Error(1)
}

func (m *mockRepo) SetDate(ctx context.Context, tutorID int64, date types.Date, slots []types.TimeString) error {
	return m.Called(ctx, tutorID, date, slots).Error(0)
}

func (m *mockRepo) SetWeekly(ctx context.Context, tutorID int64, weekday time.Weekday, slots []types.TimeString) error {
	return m.Called(ctx, tutorID, weekday, slots).Error(0)
}

func (m *mockRepo) ClearDate(ctx context.Context, tutorID int64, date types.Date) error {
	return m.Called(ctx, tutorID, date).Error(0)
}

func TestRepositoryErrors(t *testing.T) {
	repo := &mockRepo{}
	repo.On("SetWeekly", mock.Anything, tutorID, time.Monday, mock.Anything).Return(errors.New("db down"))
	repo.On("Get", mock.Anything, tutorID, monday).Return([]types.TimeString(nil), errors.New("db down"))

	svc := NewService(repo, domain.DefaultSlotsConfig(), logger.NewNop())

	_, err := svc.ApplyDefaults(context.Background(), &models.ApplyDefaultsRequest{RequesterID: tutorID, TutorID: tutorID})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Get(context.Background(), tutorID, monday)
	assert.ErrorIs(t, err, ErrInternal)
}
