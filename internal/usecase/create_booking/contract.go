package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Put атомарно создает бронирование или возвращает ошибку занятого слота
	Put(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotResolver вычисляет причину доступности одного слота
type SlotResolver interface {
	ResolveSlot(ctx context.Context, key domain.SlotKey, now time.Time) (domain.ResolvedSlot, error)
}

// Locker сериализует бронирование одного слота
type Locker interface {
	WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error
}

// MetricsRecorder счётчик исходов бронирования
type MetricsRecorder interface {
	RecordBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
