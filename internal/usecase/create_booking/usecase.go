package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/locker"
	bookingRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/booking"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     SlotResolver
	locker       Locker
	slotsConfig  domain.SlotsConfig
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver SlotResolver,
	locker Locker,
	slotsConfig domain.SlotsConfig,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		locker:       locker,
		slotsConfig:  slotsConfig,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка слота и запись выполняются под блокировкой ключа слота,
// а уникальность активного бронирования дополнительно гарантирует хранилище.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tutor=%d, student=%d, date=%s, time=%s",
		req.TutorID, req.StudentID, req.Date, req.StartTime)

	result, err := uc.execute(ctx, req)
	uc.record(err)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return newResponse(result), nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.slotsConfig); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты с учетом горизонта бронирования
	if err := validateDate(req, now, uc.slotsConfig); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Прошедший слот нельзя забронировать независимо от расписания и занятости
	pastCutoff, err := uc.slotsConfig.IsPastCutoff(req.Date, req.StartTime, now)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to evaluate cutoff: %v", ErrInternal, err)
	}
	if pastCutoff {
		uc.logger.Warn("CreateBooking: slot %s is past cutoff", req.Key())
		return nil, domain.NewSlotUnavailable(domain.ReasonPastCutoff)
	}

	key := req.Key()
	var result *domain.Booking

	// 5. Проверка и запись под блокировкой слота
	err = uc.locker.WithSlotLock(ctx, key, func(lockCtx context.Context) error {
		// 5.1. Пересчитываем причину для этого слота
		slot, err := uc.resolver.ResolveSlot(lockCtx, key, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve slot %s: %v", key, err)
			return fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
		}

		if !slot.IsOfferable() {
			uc.logger.Warn("CreateBooking: slot %s is not available: %s", key, slot.Reason)
			return domain.NewSlotUnavailable(slot.Reason)
		}

		// 5.2. Создаем бронирование
		created, err := uc.bookingRepo.Put(lockCtx, &domain.Booking{
			TutorID:         req.TutorID,
			StudentID:       req.StudentID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Status:          domain.StatusConfirmed,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotOccupied) {
				// Конкурентный запрос успел занять слот
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently", key)
				return domain.NewSlotUnavailable(domain.ReasonAlreadyBooked)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, locker.ErrLockNotAcquired) {
			uc.logger.Warn("CreateBooking: slot %s is locked by another request", key)
			return nil, domain.NewSlotUnavailable(domain.ReasonAlreadyBooked)
		}
		if errors.Is(err, domain.ErrSlotUnavailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to lock slot %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
	}

	return result, nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}

	if err == nil {
		uc.metrics.RecordBooking(outcomeCreated)
		return
	}
	if reason, ok := domain.UnavailableReason(err); ok {
		uc.metrics.RecordBooking(string(reason))
		return
	}
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDateTooFarInFuture) {
		uc.metrics.RecordBooking(outcomeInvalid)
		return
	}
	uc.metrics.RecordBooking(outcomeError)
}
