package get_tutor_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request, tutorID, userID int64) (*models.GetTutorBookingsRequest, error) {
	req := &models.GetTutorBookingsRequest{
		RequesterID:     userID,
		TutorID:         tutorID,
		IncludeInactive: false, // По умолчанию только активные
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, fmt.Errorf("invalid from: %w", err)
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, fmt.Errorf("invalid to: %w", err)
	}
	req.StartDate = from
	req.EndDate = to

	// Параметр date задает период из одного дня
	if single, err := handlers.QueryDate(r, "date"); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	} else if single != nil {
		req.StartDate = single
		req.EndDate = single
	}

	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
