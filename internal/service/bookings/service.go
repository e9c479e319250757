package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	locker      Locker
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	locker Locker,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		locker:      locker,
		logger:      logger,
	}
}

// Get получает бронирование на слот.
// Видеть бронирование могут репетитор и забронировавший студент,
// остальные получают ErrAccessDenied независимо от того, есть ли бронирование.
func (s *Service) Get(ctx context.Context, key domain.SlotKey, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("Get: fetching booking %s for user=%d", key, requesterID)

	if err := validateKey(key, requesterID); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.Get(ctx, key)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Error("Get: repository error for booking %s: %v", key, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if requesterID != key.TutorID {
		if booking == nil || booking.StudentID != requesterID {
			s.logger.Warn("Get: access denied for user=%d to booking %s", requesterID, key)
			return nil, ErrAccessDenied
		}
	}

	if booking == nil {
		s.logger.Warn("Get: booking %s not found", key)
		return nil, ErrBookingNotFound
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет активное бронирование на слоте.
// Отменить может репетитор или забронировавший студент. Остальные получают ErrAccessDenied
// независимо от того, существует ли бронирование.
func (s *Service) Cancel(ctx context.Context, key domain.SlotKey, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking %s by user=%d", key, requesterID)

	if err := validateKey(key, requesterID); err != nil {
		return nil, err
	}

	var result *domain.Booking
	err := s.locker.WithSlotLock(ctx, key, func(lockCtx context.Context) error {
		// Получаем бронирование
		booking, err := s.bookingRepo.Get(lockCtx, key)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Error("Cancel: repository error for booking %s: %v", key, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Проверяем права доступа
		if requesterID != key.TutorID {
			if booking == nil || booking.StudentID != requesterID {
				s.logger.Warn("Cancel: access denied for user=%d to booking %s", requesterID, key)
				return ErrAccessDenied
			}
		}

		// Проверяем, что есть что отменять
		if booking == nil || !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: no active booking %s", key)
			return ErrBookingNotFound
		}

		// Отменяем бронирование
		cancelled, err := s.bookingRepo.Cancel(lockCtx, key, requesterID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking %s not found during cancellation", key)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking %s: %v", key, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		result = cancelled
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInternal):
			return nil, err
		case errors.Is(err, locker.ErrLockNotAcquired):
			s.logger.Warn("Cancel: slot %s is locked by another request", key)
			return nil, ErrSlotBusy
		default:
			s.logger.Error("Cancel: failed to lock slot %s: %v", key, err)
			return nil, fmt.Errorf("%w: Cancel - lock error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", result.ID)
	return models.FromDomainBooking(result), nil
}

// GetStudentBookings получает историю бронирований студента, доступно только самому студенту
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: fetching bookings for student=%d, includeInactive=%t",
		req.StudentID, req.IncludeInactive)

	if req.StudentID <= 0 {
		return nil, fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.RequesterID != req.StudentID {
		s.logger.Warn("GetStudentBookings: access denied for user=%d to student=%d", req.RequesterID, req.StudentID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByStudentID(ctx, req.StudentID, req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentBookings: successfully fetched %d bookings for student=%d", len(bookings), req.StudentID)
	return models.FromDomainBookingList(bookings), nil
}

// GetTutorBookings получает бронирования репетитора за период, доступно только самому репетитору
func (s *Service) GetTutorBookings(ctx context.Context, req *models.GetTutorBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetTutorBookings: fetching bookings for tutor=%d, user=%d", req.TutorID, req.RequesterID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate, req.EndDate)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.TutorID <= 0 {
		return nil, fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}

	if req.RequesterID != req.TutorID {
		s.logger.Warn("GetTutorBookings: access denied for user=%d to tutor=%d", req.RequesterID, req.TutorID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidTimeRange, req.StartDate, req.EndDate)
	}

	bookings, err := s.bookingRepo.GetByTutorWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetTutorBookings: repository error for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: GetTutorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTutorBookings: successfully fetched %d bookings for tutor=%d", len(bookings), req.TutorID)
	return models.FromDomainBookingList(bookings), nil
}

// validateKey проверяет ключ слота и инициатора запроса
func validateKey(key domain.SlotKey, requesterID int64) error {
	if key.TutorID <= 0 || requesterID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if key.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := key.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
