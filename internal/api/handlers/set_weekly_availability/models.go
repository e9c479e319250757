package set_weekly_availability

// SetWeeklyAvailabilityRequest HTTP request model
type SetWeeklyAvailabilityRequest struct {
	Slots []string `json:"slots"`
}
