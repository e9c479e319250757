package get_available_slots

import (
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Request модель запроса на получение слотов репетитора
type Request struct {
	TutorID int64      // ID репетитора
	Date    types.Date // Дата, на которую нужны слоты
}

// Response модель ответа: по одному слоту на каждый слот каталога, в порядке каталога
type Response struct {
	TutorID int64
	Date    types.Date
	Slots   []domain.ResolvedSlot
}

// OfferableCount количество слотов, доступных для бронирования
func (r *Response) OfferableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.IsOfferable() {
			count++
		}
	}
	return count
}
