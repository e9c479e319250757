package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/service/bookings"
)

const (
	msgInvalidSlot   = "некорректный слот: ожидается /tutors/{id}/bookings/YYYY-MM-DD/HH:MM"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "активное бронирование не найдено"
	msgForbidden     = "доступ запрещен"
	msgSlotBusy      = "слот сейчас обрабатывается, повторите попытку"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/tutors/{tutorId}/bookings/{date}/{time}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key, err := handlers.PathSlotKey(r)
	if err != nil {
		h.logger.Warn("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Отменяем бронирование
	booking, err := h.service.Cancel(r.Context(), key, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Booking not found: slot=%s", key)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Access denied: slot=%s, user_id=%d",
				key, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrSlotBusy):
			h.logger.Warn("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Slot busy: slot=%s", key)
			handlers.RespondConflict(w, msgSlotBusy)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Failed to cancel booking: slot=%s, error=%v",
				key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /tutors/{id}/bookings/{date}/{time}/cancel - Booking cancelled successfully: booking_id=%d, user_id=%d",
		booking.ID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
