package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// UseCase use case для получения слотов репетитора на дату.
// Только читает хранилища и ничего не изменяет.
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	slotsConfig      domain.SlotsConfig
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	slotsConfig domain.SlotsConfig,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		slotsConfig:      slotsConfig,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tutor=%d, date=%s", req.TutorID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем горизонт бронирования
	if err := validateDate(req.Date, now, uc.slotsConfig); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Вычисляем слоты
	slots, err := uc.Resolve(ctx, req.TutorID, req.Date, now)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		TutorID: req.TutorID,
		Date:    req.Date,
		Slots:   slots,
	}

	uc.logger.Info("GetAvailableSlots: resolved %d slots (%d offerable) for tutor=%d, date=%s",
		len(slots), resp.OfferableCount(), req.TutorID, req.Date)

	return resp, nil
}

// Resolve возвращает по одному слоту на каждый слот каталога в порядке каталога.
// Результат зависит только от расписания, активных бронирований на дату и now.
func (uc *UseCase) Resolve(ctx context.Context, tutorID int64, date types.Date, now time.Time) ([]domain.ResolvedSlot, error) {
	availability, err := uc.availabilityRepo.Get(ctx, tutorID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByTutorAndDate(ctx, tutorID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots, err := resolveSlots(uc.slotsConfig, date, now, availability, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.RecordResolution()
	}
	return slots, nil
}

// ResolveSlot вычисляет причину для одного слота так же, как Resolve
func (uc *UseCase) ResolveSlot(ctx context.Context, key domain.SlotKey, now time.Time) (domain.ResolvedSlot, error) {
	availability, err := uc.availabilityRepo.Get(ctx, key.TutorID, key.Date)
	if err != nil {
		return domain.ResolvedSlot{}, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	_, isOpen := toSet(availability)[key.StartTime]

	isBooked := false
	existing, err := uc.bookingRepo.Get(ctx, key)
	switch {
	case err == nil:
		isBooked = existing.IsActive()
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
	default:
		return domain.ResolvedSlot{}, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	resolved, err := resolveSlot(uc.slotsConfig, key.Date, key.StartTime, now, isOpen, isBooked)
	if err != nil {
		return domain.ResolvedSlot{}, fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
	}
	return resolved, nil
}

// Config возвращает каталог слотов и политику бронирования
func (uc *UseCase) Config() domain.SlotsConfig {
	return uc.slotsConfig
}
