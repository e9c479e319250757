package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-TutorBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TutorID        int64           `json:"tutorId"`
	Date           string          `json:"date"`
	OfferableCount int             `json:"offerableCount"`
	Slots          []AvailableSlot `json:"slots"`
}

// AvailableSlot слот каталога с причиной доступности
type AvailableSlot struct {
	Time            string `json:"time"`  // "09:00"
	Label           string `json:"label"` // "9:00 AM"
	DurationMinutes int    `json:"durationMinutes"`
	Offerable       bool   `json:"offerable"`
	Reason          string `json:"reason"` // available | past_cutoff | already_booked | outside_availability
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:            slot.StartTime.String(),
			Label:           slot.StartTime.Label(),
			DurationMinutes: slot.DurationMinutes,
			Offerable:       slot.IsOfferable(),
			Reason:          string(slot.Reason),
		}
	}

	return &AvailableSlotsResponse{
		TutorID:        resp.TutorID,
		Date:           resp.Date.String(),
		OfferableCount: resp.OfferableCount(),
		Slots:          slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(tutorID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TutorID: tutorID,
		Date:    date,
	}, nil
}
