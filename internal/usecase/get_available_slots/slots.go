package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// resolveSlots вычисляет причину для каждого слота каталога по снимку расписания и занятых слотов
func resolveSlots(
	cfg domain.SlotsConfig,
	date types.Date,
	now time.Time,
	availability []types.TimeString,
	bookings []*domain.Booking,
) ([]domain.ResolvedSlot, error) {
	open := toSet(availability)

	booked := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			booked[b.StartTime] = struct{}{}
		}
	}

	catalogue := cfg.Catalogue()
	result := make([]domain.ResolvedSlot, 0, len(catalogue))
	for _, slot := range catalogue {
		_, isOpen := open[slot]
		_, isBooked := booked[slot]

		resolved, err := resolveSlot(cfg, date, slot, now, isOpen, isBooked)
		if err != nil {
			return nil, err
		}
		result = append(result, resolved)
	}

	return result, nil
}

// resolveSlot общая для списка слотов и бронирования проверка одного слота
func resolveSlot(
	cfg domain.SlotsConfig,
	date types.Date,
	slot types.TimeString,
	now time.Time,
	isOpen bool,
	isBooked bool,
) (domain.ResolvedSlot, error) {
	pastCutoff, err := cfg.IsPastCutoff(date, slot, now)
	if err != nil {
		return domain.ResolvedSlot{}, err
	}

	return domain.ResolvedSlot{
		StartTime:       slot,
		DurationMinutes: cfg.SlotDurationMinutes,
		Reason:          domain.EvaluateSlot(isOpen, pastCutoff, isBooked),
	}, nil
}

func toSet(slots []types.TimeString) map[types.TimeString]struct{} {
	set := make(map[types.TimeString]struct{}, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}
