package domain

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents one student's reservation of one tutor slot
type Booking struct {
	ID              int64
	TutorID         int64
	StudentID       int64
	Date            types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CancelledBy *int64
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key returns the (tutor, date, slot) key the booking occupies
func (b *Booking) Key() SlotKey {
	return SlotKey{TutorID: b.TutorID, Date: b.Date, StartTime: b.StartTime}
}

// IsActive returns true if the booking blocks its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// TutorBookingsFilter фильтр для получения бронирований репетитора
type TutorBookingsFilter struct {
	TutorID         int64       // Обязательный параметр
	StartDate       *types.Date // Начало периода (опционально)
	EndDate         *types.Date // Конец периода (опционально)
	IncludeInactive bool        // Включать ли отменённые бронирования
}

// Matches проверяет бронирование на соответствие фильтру
func (f TutorBookingsFilter) Matches(b *Booking) bool {
	if b.TutorID != f.TutorID {
		return false
	}
	if f.StartDate != nil && b.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && b.Date.After(*f.EndDate) {
		return false
	}
	if !f.IncludeInactive && !b.IsActive() {
		return false
	}
	return true
}
