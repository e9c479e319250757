package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// 2024-06-10 - понедельник
var monday = types.Date{Year: 2024, Month: time.June, Day: 10}

func TestMemoryRepository_EmptyByDefault(t *testing.T) {
	slots, err := NewMemoryRepository().Get(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMemoryRepository_DateOverridesWeekly(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.SetWeekly(ctx, 1, time.Monday, []types.TimeString{"09:00", "10:00"}))

	slots, err := repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, slots)

	// Следующий понедельник тоже по недельному правилу
	slots, err = repo.Get(ctx, 1, monday.AddDays(7))
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	require.NoError(t, repo.SetDate(ctx, 1, monday, []types.TimeString{"14:00"}))
	slots, err = repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00"}, slots)

	// Пустое расписание на дату - выходной
	require.NoError(t, repo.SetDate(ctx, 1, monday, nil))
	slots, err = repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)

	require.NoError(t, repo.ClearDate(ctx, 1, monday))
	slots, err = repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	slots, err = repo.Get(ctx, 2, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMemoryRepository_SnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	input := []types.TimeString{"09:00"}
	require.NoError(t, repo.SetDate(ctx, 1, monday, input))
	input[0] = "20:00"

	slots, err := repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	slots[0] = "10:00"

	again, err := repo.Get(ctx, 1, monday)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00"}, again)
}

func TestMemoryRepository_InvalidWeekday(t *testing.T) {
	err := NewMemoryRepository().SetWeekly(context.Background(), 1, time.Weekday(7), nil)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}
