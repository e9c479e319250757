package apply_default_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
)

const (
	msgInvalidTutorID = "некорректный ID репетитора"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "изменять расписание может только сам репетитор"
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

// Handle POST /api/v1/tutors/{tutorId}/availability/defaults
// Открывает весь каталог слотов с понедельника по пятницу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tutorID, err := handlers.PathID(r, "tutorId")
	if err != nil {
		h.logger.Warn("POST /tutors/{id}/availability/defaults - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ApplyDefaults(r.Context(), &models.ApplyDefaultsRequest{
		RequesterID: userID,
		TutorID:     tutorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /tutors/{id}/availability/defaults - Access denied: tutor_id=%d, user_id=%d", tutorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /tutors/{id}/availability/defaults - Failed to apply defaults: tutor_id=%d, error=%v",
				tutorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tutors/{id}/availability/defaults - Defaults applied: tutor_id=%d, days=%d", tutorID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
