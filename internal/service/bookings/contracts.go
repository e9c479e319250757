package bookings

import (
	"context"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.Booking, error)
	Cancel(ctx context.Context, key domain.SlotKey, cancelledBy int64) (*domain.Booking, error)
	GetByStudentID(ctx context.Context, studentID int64, includeInactive bool) ([]*domain.Booking, error)
	GetByTutorWithFilter(ctx context.Context, filter domain.TutorBookingsFilter) ([]*domain.Booking, error)
}

// Locker сериализует операции над одним слотом (тот же, что при бронировании)
type Locker interface {
	WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
