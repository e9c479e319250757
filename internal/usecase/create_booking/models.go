package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	TutorID   int64            // ID репетитора
	StudentID int64            // ID студента (текущий пользователь)
	Date      types.Date       // Дата занятия
	StartTime types.TimeString // Время начала слота (например, "09:00")
}

// Key возвращает ключ слота запроса
func (r *Request) Key() domain.SlotKey {
	return domain.SlotKey{TutorID: r.TutorID, Date: r.Date, StartTime: r.StartTime}
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	TutorID         int64
	StudentID       int64
	Date            types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func newResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		TutorID:         b.TutorID,
		StudentID:       b.StudentID,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
