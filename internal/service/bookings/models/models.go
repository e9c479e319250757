package models

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Request модели

// GetStudentBookingsRequest запрос на получение бронирований студента
type GetStudentBookingsRequest struct {
	RequesterID     int64 `json:"-"`
	StudentID       int64 `json:"studentId"`
	IncludeInactive bool  `json:"includeInactive,omitempty"`
}

// GetTutorBookingsRequest запрос на получение бронирований репетитора
type GetTutorBookingsRequest struct {
	RequesterID     int64       `json:"-"`
	TutorID         int64       `json:"tutorId"`
	StartDate       *types.Date `json:"-"` // Начало периода (опционально)
	EndDate         *types.Date `json:"-"` // Конец периода (опционально)
	IncludeInactive bool        `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTutorBookingsRequest) ToDomainFilter() domain.TutorBookingsFilter {
	return domain.TutorBookingsFilter{
		TutorID:         r.TutorID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	TutorID         int64  `json:"tutorId"`
	StudentID       int64  `json:"studentId"`
	Date            string `json:"date"`      // "2024-06-10"
	StartTime       string `json:"time"`      // "09:00"
	Label           string `json:"timeLabel"` // "9:00 AM"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	CancelledBy *int64  `json:"cancelledBy,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		TutorID:         b.TutorID,
		StudentID:       b.StudentID,
		Date:            b.Date.String(),
		StartTime:       b.StartTime.String(),
		Label:           b.StartTime.Label(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CancelledBy:     b.CancelledBy,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
