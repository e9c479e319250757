package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

var (
	// ErrInvalidSlotsConfig некорректная настройка каталога слотов
	ErrInvalidSlotsConfig = errors.New("invalid slots config")
	// ErrSlotNotInCatalogue время не совпадает ни с одним слотом каталога
	ErrSlotNotInCatalogue = errors.New("slot is not in catalogue")
)

// SlotsConfig represents the fixed slot catalogue and booking policy shared by all tutors
type SlotsConfig struct {
	DayStart                types.TimeString
	DayEnd                  types.TimeString
	SlotDurationMinutes     int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
}

// DefaultSlotsConfig 09:00-21:00 по 60 минут, без ограничений на горизонт и уведомление
func DefaultSlotsConfig() SlotsConfig {
	return SlotsConfig{
		DayStart:                DefaultDayStart,
		DayEnd:                  DefaultDayEnd,
		SlotDurationMinutes:     DefaultSlotDurationMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// Validate checks the catalogue bounds and policy values
func (c SlotsConfig) Validate() error {
	start, err := c.DayStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: day_start: %v", ErrInvalidSlotsConfig, err)
	}
	end, err := c.DayEnd.Minutes()
	if err != nil {
		return fmt.Errorf("%w: day_end: %v", ErrInvalidSlotsConfig, err)
	}
	if c.SlotDurationMinutes < MinSlotDurationMinutes || c.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidSlotsConfig, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if end-start < c.SlotDurationMinutes {
		return fmt.Errorf("%w: day window %s-%s fits no slot", ErrInvalidSlotsConfig, c.DayStart, c.DayEnd)
	}
	if c.AdvanceBookingDays < 0 || c.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advance booking days must be between 0 and %d", ErrInvalidSlotsConfig, MaxAdvanceBookingDays)
	}
	if c.MinBookingNoticeMinutes < 0 || c.MinBookingNoticeMinutes > MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: min booking notice must be between 0 and %d minutes", ErrInvalidSlotsConfig, MaxBookingNoticeMinutes)
	}
	return nil
}

// Catalogue returns the ordered slot start times [DayStart, DayStart+d, ...] ending no later than DayEnd
func (c SlotsConfig) Catalogue() []types.TimeString {
	start, err := c.DayStart.Minutes()
	if err != nil {
		return nil
	}
	end, err := c.DayEnd.Minutes()
	if err != nil || c.SlotDurationMinutes <= 0 {
		return nil
	}

	slots := make([]types.TimeString, 0, (end-start)/c.SlotDurationMinutes)
	for m := start; m+c.SlotDurationMinutes <= end; m += c.SlotDurationMinutes {
		ts, err := types.TimeString("00:00").AddMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, ts)
	}
	return slots
}

// Contains returns true if ts is exactly one of the catalogue slots
func (c SlotsConfig) Contains(ts types.TimeString) bool {
	for _, slot := range c.Catalogue() {
		if slot == ts {
			return true
		}
	}
	return false
}

// Normalize validates slots against the catalogue, drops duplicates and returns them in catalogue order
func (c SlotsConfig) Normalize(slots []types.TimeString) ([]types.TimeString, error) {
	catalogue := c.Catalogue()
	position := make(map[types.TimeString]int, len(catalogue))
	for i, slot := range catalogue {
		position[slot] = i
	}

	seen := make(map[types.TimeString]struct{}, len(slots))
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if _, ok := position[slot]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotInCatalogue, slot)
		}
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		result = append(result, slot)
	}

	sort.Slice(result, func(i, j int) bool {
		return position[result[i]] < position[result[j]]
	})
	return result, nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c SlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// IsBeyondHorizon returns true if date is further than AdvanceBookingDays from today
func (c SlotsConfig) IsBeyondHorizon(date types.Date, now time.Time) bool {
	if !c.HasAdvanceBookingLimit() {
		return false
	}
	return date.After(types.NewDate(now).AddDays(c.AdvanceBookingDays))
}

// IsPastCutoff returns true unless the slot starts strictly later than now plus the minimum notice.
// The slot instant is interpreted in now's location.
func (c SlotsConfig) IsPastCutoff(date types.Date, ts types.TimeString, now time.Time) (bool, error) {
	start, err := date.At(ts, now.Location())
	if err != nil {
		return false, err
	}
	cutoff := now.Add(time.Duration(c.MinBookingNoticeMinutes) * time.Minute)
	return !start.After(cutoff), nil
}
