package app

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// BookingStore хранилище бронирований: Postgres или память
type BookingStore interface {
	Put(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Get(ctx context.Context, key domain.SlotKey) (*domain.Booking, error)
	Cancel(ctx context.Context, key domain.SlotKey, cancelledBy int64) (*domain.Booking, error)
	GetActiveByTutorAndDate(ctx context.Context, tutorID int64, date types.Date) ([]*domain.Booking, error)
	GetByStudentID(ctx context.Context, studentID int64, includeInactive bool) ([]*domain.Booking, error)
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorBookingsFilter) ([]*domain.Booking, error)
}

// AvailabilityStore хранилище расписания: Postgres или память
type AvailabilityStore interface {
	Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error)
	SetDate(ctx context.Context, tutorID int64, date types.Date, slots []types.TimeString) error
	SetWeekly(ctx context.Context, tutorID int64, weekday time.Weekday, slots []types.TimeString) error
	ClearDate(ctx context.Context, tutorID int64, date types.Date) error
}

// SlotLocker блокировка слота: локальная или Redis
type SlotLocker interface {
	WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
