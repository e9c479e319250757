package domain

import (
	"errors"
	"fmt"
)

// ErrSlotUnavailable matches every *SlotUnavailableError via errors.Is
var ErrSlotUnavailable = errors.New("slot is not available")

// SlotUnavailableError is returned when a slot cannot be booked; the student should pick another one
type SlotUnavailableError struct {
	Reason SlotReason
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot is not available: %s", e.Reason)
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

// NewSlotUnavailable creates a SlotUnavailableError with the given reason
func NewSlotUnavailable(reason SlotReason) error {
	return &SlotUnavailableError{Reason: reason}
}

// UnavailableReason extracts the reason from an error chain
func UnavailableReason(err error) (SlotReason, bool) {
	var target *SlotUnavailableError
	if errors.As(err, &target) {
		return target.Reason, true
	}
	return "", false
}
