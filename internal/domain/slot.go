package domain

import (
	"fmt"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// SlotKey identifies one bookable unit: a tutor's catalogue slot on a date
type SlotKey struct {
	TutorID   int64
	Date      types.Date
	StartTime types.TimeString
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d/%s/%s", k.TutorID, k.Date, k.StartTime)
}

// SlotReason explains why a slot is or is not offerable
type SlotReason string

const (
	ReasonAvailable           SlotReason = "available"
	ReasonPastCutoff          SlotReason = "past_cutoff"
	ReasonAlreadyBooked       SlotReason = "already_booked"
	ReasonOutsideAvailability SlotReason = "outside_availability"
)

// ResolvedSlot is a computed, never persisted view of one catalogue slot
type ResolvedSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Reason          SlotReason
}

// IsOfferable returns true if a student may book the slot
func (s ResolvedSlot) IsOfferable() bool {
	return s.Reason == ReasonAvailable
}

// EvaluateSlot applies the reason precedence shared by slot resolution and booking:
// outside availability, then past cutoff, then already booked.
func EvaluateSlot(inAvailability, pastCutoff, booked bool) SlotReason {
	switch {
	case !inAvailability:
		return ReasonOutsideAvailability
	case pastCutoff:
		return ReasonPastCutoff
	case booked:
		return ReasonAlreadyBooked
	default:
		return ReasonAvailable
	}
}
