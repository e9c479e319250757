package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tutors/{tutorId}/availability/{date}
// Публичный endpoint: слоты, открытые репетитором на дату, без учета бронирований
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tutorID, err := handlers.PathID(r, "tutorId")
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability/{date} - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	date, err := types.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /tutors/{id}/availability/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Get(r.Context(), tutorID, date)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /tutors/{id}/availability/{date} - Failed to get availability: tutor_id=%d, error=%v",
			tutorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tutors/{id}/availability/{date} - Availability retrieved: tutor_id=%d, date=%s, slots=%d",
		tutorID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
