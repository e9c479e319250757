package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date string `json:"date"` // "2024-06-10"
	Slot string `json:"slot"` // "09:00" или "9:00 AM"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	TutorID         int64  `json:"tutorId"`
	StudentID       int64  `json:"studentId"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Label           string `json:"timeLabel"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tutorID, studentID int64) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Slot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		TutorID:   tutorID,
		StudentID: studentID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		TutorID:         resp.TutorID,
		StudentID:       resp.StudentID,
		Date:            resp.Date.String(),
		Time:            resp.StartTime.String(),
		Label:           resp.StartTime.Label(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
