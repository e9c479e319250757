package set_availability

// SetAvailabilityRequest HTTP request model.
// Пустой список закрывает день.
type SetAvailabilityRequest struct {
	Slots []string `json:"slots"` // ["09:00", "2:00 PM"]
}
