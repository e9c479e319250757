package domain

// Default configuration values
const (
	DefaultDayStart                = "09:00"
	DefaultDayEnd                  = "21:00" // последний слот начинается в 20:00
	DefaultSlotDurationMinutes     = 60
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotDurationMinutes  = 15
	MaxSlotDurationMinutes  = 240
	MaxAdvanceBookingDays   = 365   // 1 year
	MaxBookingNoticeMinutes = 10080 // 1 week
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
