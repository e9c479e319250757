package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

type weeklyKey struct {
	tutorID int64
	weekday time.Weekday
}

type dateKey struct {
	tutorID int64
	date    types.Date
}

// MemoryRepository хранит расписание репетиторов в памяти процесса.
// Все методы возвращают копии, поэтому вызывающий получает неизменяемый снимок.
type MemoryRepository struct {
	mu     sync.RWMutex
	weekly map[weeklyKey][]types.TimeString
	dates  map[dateKey][]types.TimeString
}

// NewMemoryRepository создает пустое хранилище расписания
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		weekly: make(map[weeklyKey][]types.TimeString),
		dates:  make(map[dateKey][]types.TimeString),
	}
}

// Get возвращает набор слотов на дату: разовое расписание, иначе недельное правило, иначе пусто
func (r *MemoryRepository) Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if slots, ok := r.dates[dateKey{tutorID: tutorID, date: date}]; ok {
		return copySlots(slots), nil
	}
	return copySlots(r.weekly[weeklyKey{tutorID: tutorID, weekday: date.Weekday()}]), nil
}

// SetDate полностью заменяет набор слотов на дату
func (r *MemoryRepository) SetDate(ctx context.Context, tutorID int64, date types.Date, slots []types.TimeString) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.dates[dateKey{tutorID: tutorID, date: date}] = copySlots(slots)
	return nil
}

// SetWeekly полностью заменяет недельное правило для дня недели
func (r *MemoryRepository) SetWeekly(ctx context.Context, tutorID int64, weekday time.Weekday, slots []types.TimeString) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.weekly[weeklyKey{tutorID: tutorID, weekday: weekday}] = copySlots(slots)
	return nil
}

// ClearDate удаляет расписание на дату
func (r *MemoryRepository) ClearDate(ctx context.Context, tutorID int64, date types.Date) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.dates, dateKey{tutorID: tutorID, date: date})
	return nil
}

func copySlots(slots []types.TimeString) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	copy(result, slots)
	return result
}
