package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	msgUnauthorized        = "требуется аутентификация"
	msgInvalidTutorID      = "некорректный ID репетитора"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени слота, ожидается HH:MM или 9:00 AM"
	msgInvalidRequest      = "некорректные данные бронирования"
	msgAlreadyBooked       = "слот уже забронирован"
	msgPastCutoff          = "слишком поздно для бронирования этого слота"
	msgOutsideAvailability = "репетитор не принимает в это время"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tutors/{tutorId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	tutorID, err := handlers.PathID(r, "tutorId")
	if err != nil {
		h.logger.Warn("POST /tutors/{id}/bookings - Invalid tutor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTutorID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tutors/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(tutorID, studentID)
	if err != nil {
		h.logger.Warn("POST /tutors/{id}/bookings - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, useCaseReq, err)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tutors/{id}/bookings - Booking created successfully: booking_id=%d, tutor_id=%d, student_id=%d, slot=%s %s",
		result.ID, tutorID, studentID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondError(w http.ResponseWriter, req *createBooking.Request, err error) {
	if reason, ok := domain.UnavailableReason(err); ok {
		h.logger.Warn("POST /tutors/{id}/bookings - Slot unavailable: slot=%s, student_id=%d, reason=%s",
			req.Key(), req.StudentID, reason)
		switch reason {
		case domain.ReasonAlreadyBooked:
			handlers.RespondConflict(w, msgAlreadyBooked)
		case domain.ReasonPastCutoff:
			handlers.RespondUnprocessable(w, msgPastCutoff)
		default:
			handlers.RespondUnprocessable(w, msgOutsideAvailability)
		}
		return
	}

	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /tutors/{id}/bookings - Invalid input: slot=%s, error=%v", req.Key(), err)
		handlers.RespondBadRequest(w, msgInvalidRequest)

	case errors.Is(err, createBooking.ErrDateTooFarInFuture):
		h.logger.Warn("POST /tutors/{id}/bookings - Date too far in future: slot=%s", req.Key())
		handlers.RespondUnprocessable(w, msgDateTooFar)

	default:
		h.logger.Error("POST /tutors/{id}/bookings - Failed to create booking: slot=%s, student_id=%d, error=%v",
			req.Key(), req.StudentID, err)
		handlers.RespondInternalError(w)
	}
}
