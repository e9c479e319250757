package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// MemoryRepository хранит бронирования в памяти процесса.
// Все операции выполняются под одним мьютексом, поэтому Put атомарен относительно проверки слота.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	now    func() time.Time

	// active активное бронирование на ключ слота
	active map[domain.SlotKey]*domain.Booking
	// history все бронирования в порядке создания, включая отмененные
	history []*domain.Booking
}

// NewMemoryRepository создает пустой ledger в памяти
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		now:    time.Now,
		active: make(map[domain.SlotKey]*domain.Booking),
	}
}

// Put создает бронирование, если на слот нет активного
func (r *MemoryRepository) Put(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !booking.IsActive() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := booking.Key()
	if _, occupied := r.active[key]; occupied {
		return nil, ErrSlotOccupied
	}

	r.nextID++
	now := r.now()

	stored := cloneBooking(booking)
	stored.ID = r.nextID
	stored.CancelledBy = nil
	stored.CancelledAt = nil
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.active[key] = stored
	r.history = append(r.history, stored)

	return cloneBooking(stored), nil
}

// Get возвращает активное бронирование на слот, а если его нет - последнее отмененное
func (r *MemoryRepository) Get(ctx context.Context, key domain.SlotKey) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.lookup(key)
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// Cancel отменяет активное бронирование на слоте; повторная отмена возвращает уже отмененное
func (r *MemoryRepository) Cancel(ctx context.Context, key domain.SlotKey, cancelledBy int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.active[key]
	if !ok {
		if last := r.lookup(key); last != nil {
			return cloneBooking(last), nil
		}
		return nil, ErrBookingNotFound
	}

	now := r.now()
	by := cancelledBy
	b.Status = domain.StatusCancelled
	b.CancelledBy = &by
	b.CancelledAt = &now
	b.UpdatedAt = now
	delete(r.active, key)

	return cloneBooking(b), nil
}

// GetActiveByTutorAndDate возвращает активные бронирования репетитора на дату, по времени начала
func (r *MemoryRepository) GetActiveByTutorAndDate(ctx context.Context, tutorID int64, date types.Date) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for key, b := range r.active {
		if key.TutorID == tutorID && key.Date == date {
			result = append(result, cloneBooking(b))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

// GetByStudentID получает список бронирований студента, сначала новые
func (r *MemoryRepository) GetByStudentID(ctx context.Context, studentID int64, includeInactive bool) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.history {
		if b.StudentID != studentID || (!includeInactive && !b.IsActive()) {
			continue
		}
		result = append(result, cloneBooking(b))
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime.IsAfter(result[j].StartTime)
	})
	return result, nil
}

// GetByTutorWithFilter получает бронирования репетитора с фильтрацией по периоду и статусу
func (r *MemoryRepository) GetByTutorWithFilter(ctx context.Context, filter domain.TutorBookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.history {
		if filter.Matches(b) {
			result = append(result, cloneBooking(b))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

// lookup вызывается под мьютексом
func (r *MemoryRepository) lookup(key domain.SlotKey) *domain.Booking {
	if b, ok := r.active[key]; ok {
		return b
	}
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Key() == key {
			return r.history[i]
		}
	}
	return nil
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.CancelledBy != nil {
		by := *b.CancelledBy
		c.CancelledBy = &by
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}
