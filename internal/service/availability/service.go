package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Service сервис управления расписанием репетиторов.
// Изменять расписание может только сам репетитор.
type Service struct {
	repo        AvailabilityRepository
	slotsConfig domain.SlotsConfig
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	repo AvailabilityRepository,
	slotsConfig domain.SlotsConfig,
	logger Logger,
) *Service {
	return &Service{
		repo:        repo,
		slotsConfig: slotsConfig,
		logger:      logger,
	}
}

// Get возвращает слоты, открытые репетитором на дату
func (s *Service) Get(ctx context.Context, tutorID int64, date types.Date) (*models.AvailabilityResponse, error) {
	if tutorID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: tutorID and date are required", ErrInvalidInput)
	}

	slots, err := s.repo.Get(ctx, tutorID, date)
	if err != nil {
		s.logger.Error("Get: failed to get availability for tutor=%d, date=%s: %v", tutorID, date, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return &models.AvailabilityResponse{
		TutorID: tutorID,
		Date:    date.String(),
		Slots:   models.ToSlotViews(slots),
	}, nil
}

// SetDate заменяет набор слотов на дату целиком. Пустой набор закрывает день.
func (s *Service) SetDate(ctx context.Context, req *models.SetDateRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetDate: tutor=%d, date=%s, slots=%d by user=%d",
		req.TutorID, req.Date, len(req.Slots), req.RequesterID)

	// 1. Проверяем права доступа
	if err := s.checkOwner(req.TutorID, req.RequesterID); err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Валидируем и нормализуем слоты
	slots, err := s.parseSlots(req.Slots)
	if err != nil {
		s.logger.Warn("SetDate: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	if err := s.repo.SetDate(ctx, req.TutorID, req.Date, slots); err != nil {
		s.logger.Error("SetDate: repository error for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: SetDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetDate: tutor=%d opened %d slots on %s", req.TutorID, len(slots), req.Date)
	return &models.AvailabilityResponse{
		TutorID: req.TutorID,
		Date:    req.Date.String(),
		Slots:   models.ToSlotViews(slots),
	}, nil
}

// SetWeekly заменяет недельное правило для дня недели
func (s *Service) SetWeekly(ctx context.Context, req *models.SetWeeklyRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetWeekly: tutor=%d, weekday=%s, slots=%d by user=%d",
		req.TutorID, req.Weekday, len(req.Slots), req.RequesterID)

	if err := s.checkOwner(req.TutorID, req.RequesterID); err != nil {
		return nil, err
	}

	if req.Weekday < time.Sunday || req.Weekday > time.Saturday {
		return nil, fmt.Errorf("%w: weekday out of range", ErrInvalidInput)
	}

	slots, err := s.parseSlots(req.Slots)
	if err != nil {
		s.logger.Warn("SetWeekly: validation failed: %v", err)
		return nil, err
	}

	if err := s.repo.SetWeekly(ctx, req.TutorID, req.Weekday, slots); err != nil {
		s.logger.Error("SetWeekly: repository error for tutor=%d: %v", req.TutorID, err)
		return nil, fmt.Errorf("%w: SetWeekly - repository error: %v", ErrInternal, err)
	}

	return &models.AvailabilityResponse{
		TutorID: req.TutorID,
		Weekday: req.Weekday.String(),
		Slots:   models.ToSlotViews(slots),
	}, nil
}

// ClearDate удаляет расписание на дату, после чего действует недельное правило
func (s *Service) ClearDate(ctx context.Context, req *models.ClearDateRequest) error {
	s.logger.Info("ClearDate: tutor=%d, date=%s by user=%d", req.TutorID, req.Date, req.RequesterID)

	if err := s.checkOwner(req.TutorID, req.RequesterID); err != nil {
		return err
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.repo.ClearDate(ctx, req.TutorID, req.Date); err != nil {
		s.logger.Error("ClearDate: repository error for tutor=%d: %v", req.TutorID, err)
		return fmt.Errorf("%w: ClearDate - repository error: %v", ErrInternal, err)
	}
	return nil
}

// ApplyDefaults открывает весь каталог слотов с понедельника по пятницу.
// Используется при регистрации репетитора.
func (s *Service) ApplyDefaults(ctx context.Context, req *models.ApplyDefaultsRequest) (*models.WeeklyResponse, error) {
	s.logger.Info("ApplyDefaults: tutor=%d by user=%d", req.TutorID, req.RequesterID)

	if err := s.checkOwner(req.TutorID, req.RequesterID); err != nil {
		return nil, err
	}

	catalogue := s.slotsConfig.Catalogue()
	resp := &models.WeeklyResponse{
		TutorID: req.TutorID,
		Days:    make([]models.AvailabilityResponse, 0, len(domain.DefaultWorkdays)),
	}

	for _, weekday := range domain.DefaultWorkdays {
		if err := s.repo.SetWeekly(ctx, req.TutorID, weekday, catalogue); err != nil {
			s.logger.Error("ApplyDefaults: repository error for tutor=%d, weekday=%s: %v", req.TutorID, weekday, err)
			return nil, fmt.Errorf("%w: ApplyDefaults - repository error: %v", ErrInternal, err)
		}
		resp.Days = append(resp.Days, models.AvailabilityResponse{
			TutorID: req.TutorID,
			Weekday: weekday.String(),
			Slots:   models.ToSlotViews(catalogue),
		})
	}

	s.logger.Info("ApplyDefaults: tutor=%d opened %d slots on %d weekdays",
		req.TutorID, len(catalogue), len(domain.DefaultWorkdays))
	return resp, nil
}

// ParseWeekday разбирает день недели по имени ("monday", "Mon") или номеру 0..6
func ParseWeekday(s string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if value == name || value == name[:3] || value == fmt.Sprint(int(d)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidInput, s)
}

// Вспомогательные методы

func (s *Service) checkOwner(tutorID, requesterID int64) error {
	if tutorID <= 0 {
		return fmt.Errorf("%w: tutorID must be positive", ErrInvalidInput)
	}
	if tutorID != requesterID {
		s.logger.Warn("checkOwner: user=%d is not tutor=%d", requesterID, tutorID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) parseSlots(raw []string) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0, len(raw))
	for _, r := range raw {
		ts, err := types.NewTimeStringFromString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		slots = append(slots, ts)
	}

	normalized, err := s.slotsConfig.Normalize(slots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return normalized, nil
}
