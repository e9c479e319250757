package domain

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// WeeklyRule recurring availability of a tutor for one weekday
type WeeklyRule struct {
	TutorID   int64
	Weekday   time.Weekday
	Slots     []types.TimeString
	UpdatedAt time.Time
}

// DateOverride one-off availability for a specific date.
// An override with no slots closes the date even if a weekly rule exists.
type DateOverride struct {
	TutorID   int64
	Date      types.Date
	Slots     []types.TimeString
	UpdatedAt time.Time
}

// DefaultWorkdays weekdays opened by the onboarding default generation
var DefaultWorkdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}
