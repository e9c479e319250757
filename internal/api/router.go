package api

import (
	"context"
	"fmt"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	applyDefaultsHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/apply_default_availability"
	cancelBookingHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/cancel_booking"
	clearAvailabilityHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/clear_availability"
	createBookingHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_booking"
	getTutorBookingsHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_tutor_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/get_user_bookings"
	setAvailabilityHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/set_availability"
	setWeeklyHandler "github.com/m04kA/SMC-TutorBooking/internal/api/handlers/set_weekly_availability"
	"github.com/m04kA/SMC-TutorBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	availabilityModels "github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	bookingModels "github.com/m04kA/SMC-TutorBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// BookingService операции над бронированиями
type BookingService interface {
	Get(ctx context.Context, key domain.SlotKey, requesterID int64) (*bookingModels.BookingResponse, error)
	Cancel(ctx context.Context, key domain.SlotKey, requesterID int64) (*bookingModels.BookingResponse, error)
	GetStudentBookings(ctx context.Context, req *bookingModels.GetStudentBookingsRequest) (*bookingModels.BookingListResponse, error)
	GetTutorBookings(ctx context.Context, req *bookingModels.GetTutorBookingsRequest) (*bookingModels.BookingListResponse, error)
}

// AvailabilityService управление расписанием репетитора
type AvailabilityService interface {
	Get(ctx context.Context, tutorID int64, date types.Date) (*availabilityModels.AvailabilityResponse, error)
	SetDate(ctx context.Context, req *availabilityModels.SetDateRequest) (*availabilityModels.AvailabilityResponse, error)
	SetWeekly(ctx context.Context, req *availabilityModels.SetWeeklyRequest) (*availabilityModels.AvailabilityResponse, error)
	ClearDate(ctx context.Context, req *availabilityModels.ClearDateRequest) error
	ApplyDefaults(ctx context.Context, req *availabilityModels.ApplyDefaultsRequest) (*availabilityModels.WeeklyResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector HTTP метрики и endpoint для Prometheus
type MetricsCollector interface {
	middleware.MetricsCollector
	Handler() http.Handler
}

// Dependencies зависимости роутера
type Dependencies struct {
	GetAvailableSlots getAvailableSlotsHandler.GetAvailableSlotsUseCase
	CreateBooking     createBookingHandler.CreateBookingUseCase
	Bookings          BookingService
	Availability      AvailabilityService

	Auth    *middleware.Authenticator
	Metrics MetricsCollector // nil - метрики выключены
	Logger  Logger
}

// Options настройки роутера
type Options struct {
	MetricsPath    string
	AllowedOrigins []string
}

// NewRouter собирает HTTP роутер сервиса
func NewRouter(deps Dependencies, opts Options) http.Handler {
	log := deps.Logger

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(deps.GetAvailableSlots, log)
	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	cancelBooking := cancelBookingHandler.NewHandler(deps.Bookings, log)
	getTutorBookings := getTutorBookingsHandler.NewHandler(deps.Bookings, log)
	getUserBookings := getUserBookingsHandler.NewHandler(deps.Bookings, log)
	getAvailability := getAvailabilityHandler.NewHandler(deps.Availability, log)
	setAvailability := setAvailabilityHandler.NewHandler(deps.Availability, log)
	setWeekly := setWeeklyHandler.NewHandler(deps.Availability, log)
	clearAvailability := clearAvailabilityHandler.NewHandler(deps.Availability, log)
	applyDefaults := applyDefaultsHandler.NewHandler(deps.Availability, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
		if opts.MetricsPath != "" {
			// Metrics endpoint (публичный, без аутентификации)
			r.Handle(opts.MetricsPath, deps.Metrics.Handler()).Methods(http.MethodGet)
		}
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Handle GET /api/v1/tutors/{tutorId}/availability?date=YYYY-MM-DD
	api.HandleFunc("/tutors/{tutorId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Handle GET /api/v1/tutors/{tutorId}/availability/{date}
	api.HandleFunc("/tutors/{tutorId}/availability/{date}", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (X-User-ID или Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(deps.Auth.Middleware)

	// --- Бронирования ---
	// Handle POST /api/v1/tutors/{tutorId}/bookings
	protected.HandleFunc("/tutors/{tutorId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Handle GET /api/v1/tutors/{tutorId}/bookings
	protected.HandleFunc("/tutors/{tutorId}/bookings", getTutorBookings.Handle).Methods(http.MethodGet)

	// Handle GET /api/v1/tutors/{tutorId}/bookings/{date}/{time}
	protected.HandleFunc("/tutors/{tutorId}/bookings/{date}/{time}", getBooking.Handle).Methods(http.MethodGet)

	// Handle PATCH /api/v1/tutors/{tutorId}/bookings/{date}/{time}/cancel
	protected.HandleFunc("/tutors/{tutorId}/bookings/{date}/{time}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Handle GET /api/v1/users/{userId}/bookings
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Расписание репетитора ---
	// Handle POST /api/v1/tutors/{tutorId}/availability/defaults
	protected.HandleFunc("/tutors/{tutorId}/availability/defaults", applyDefaults.Handle).Methods(http.MethodPost)

	// Handle PUT /api/v1/tutors/{tutorId}/availability/{date}
	protected.HandleFunc("/tutors/{tutorId}/availability/{date}", setAvailability.Handle).Methods(http.MethodPut)

	// Handle DELETE /api/v1/tutors/{tutorId}/availability/{date}
	protected.HandleFunc("/tutors/{tutorId}/availability/{date}", clearAvailability.Handle).Methods(http.MethodDelete)

	// Handle PUT /api/v1/tutors/{tutorId}/weekly-availability/{weekday}
	protected.HandleFunc("/tutors/{tutorId}/weekly-availability/{weekday}", setWeekly.Handle).Methods(http.MethodPut)

	var handler http.Handler = r
	if len(opts.AllowedOrigins) > 0 {
		handler = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins(opts.AllowedOrigins),
			gorillahandlers.AllowedMethods([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}),
			gorillahandlers.AllowedHeaders([]string{
				"Content-Type", "Authorization", middleware.UserIDHeader, middleware.RequestIDHeader,
			}),
			gorillahandlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
		)(handler)
	}

	return gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(recoveryLogger{log}),
	)(handler)
}

// recoveryLogger пишет паники через логгер сервиса
type recoveryLogger struct {
	logger Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("panic recovered: %s", fmt.Sprint(v...))
}
