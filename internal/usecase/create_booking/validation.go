package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, cfg domain.SlotsConfig) error {
	if req.TutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.TutorID == req.StudentID {
		return fmt.Errorf("%w: tutor cannot book own slot", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !cfg.Contains(req.StartTime) {
		return fmt.Errorf("%w: %s is not a catalogue slot", ErrInvalidInput, req.StartTime)
	}

	return nil
}

// validateDate проверяет ограничение на бронирование заранее
func validateDate(req *Request, now time.Time, cfg domain.SlotsConfig) error {
	if cfg.IsBeyondHorizon(req.Date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, cfg.AdvanceBookingDays)
	}
	return nil
}
