package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByTutorAndDate получает активные бронирования репетитора на дату
	GetActiveByTutorAndDate(ctx context.Context, tutorID int64, date types.Date) ([]*domain.Booking, error)
	// Get получает бронирование на конкретный слот
	Get(ctx context.Context, key domain.SlotKey) (*domain.Booking, error)
}

// AvailabilityRepository интерфейс хранилища расписания
type AvailabilityRepository interface {
	Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error)
}

// MetricsRecorder счётчик вычислений слотов
type MetricsRecorder interface {
	RecordResolution()
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
