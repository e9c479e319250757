package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// AvailabilityRepository интерфейс хранилища расписания
type AvailabilityRepository interface {
	Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error)
	SetDate(ctx context.Context, tutorID int64, date types.Date, slots []types.TimeString) error
	SetWeekly(ctx context.Context, tutorID int64, weekday time.Weekday, slots []types.TimeString) error
	ClearDate(ctx context.Context, tutorID int64, date types.Date) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
