package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	availabilityRepo "github.com/m04kA/CMP-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/CMP-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// Service сервис управления профилями доступности коучей
// Все операции записи выполняются в serializable-транзакции с инкрементом
// версии профиля, поэтому читатели видят расписание только целиком
type Service struct {
	repo      AvailabilityRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(repo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetSchedule возвращает полный профиль доступности коуча
// Если профиль ещё не создавался - сидирует дефолтный (Пн-Пт 09:00-17:00)
func (s *Service) GetSchedule(ctx context.Context, coachID int64) (*models.ScheduleResponse, error) {
	profile, err := s.GetOrCreateProfile(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProfile(profile), nil
}

// GetOrCreateProfile возвращает доменный профиль коуча, создавая дефолтный при первом обращении
func (s *Service) GetOrCreateProfile(ctx context.Context, coachID int64) (*domain.CoachAvailability, error) {
	profile, err := s.repo.GetByCoachID(ctx, coachID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, availabilityRepo.ErrProfileNotFound) {
		s.logger.Error("GetOrCreateProfile: repository error for coach=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: GetOrCreateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrCreateProfile: seeding default profile for coach=%d", coachID)

	seedErr := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		_, err := s.repo.Create(ctx, defaultProfile(coachID))
		return err
	})

	// Конкурентный запрос мог создать профиль первым - это не ошибка
	if seedErr != nil && !errors.Is(seedErr, availabilityRepo.ErrProfileAlreadyExists) {
		s.logger.Error("GetOrCreateProfile: failed to seed profile for coach=%d: %v", coachID, seedErr)
		return nil, fmt.Errorf("%w: GetOrCreateProfile - seed default profile: %v", ErrInternal, seedErr)
	}

	profile, err = s.repo.GetByCoachID(ctx, coachID)
	if err != nil {
		s.logger.Error("GetOrCreateProfile: failed to fetch seeded profile for coach=%d: %v", coachID, err)
		return nil, fmt.Errorf("%w: GetOrCreateProfile - fetch seeded profile: %v", ErrInternal, err)
	}

	return profile, nil
}

// ReplaceRecurring целиком заменяет еженедельное расписание коуча
func (s *Service) ReplaceRecurring(ctx context.Context, req *models.ReplaceRecurringRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceRecurring: updating schedule for coach=%d, slots=%d", req.CoachID, len(req.Slots))

	if err := validateRecurringSlots(req.Slots); err != nil {
		s.logger.Warn("ReplaceRecurring: invalid slots for coach=%d: %v", req.CoachID, err)
		return nil, err
	}

	entries := models.ToDomainRecurring(req.Slots)

	if err := s.mutateProfile(ctx, req.CoachID, req.ExpectedVersion, func(ctx context.Context, profile *domain.CoachAvailability) error {
		return s.repo.ReplaceRecurring(ctx, req.CoachID, entries)
	}); err != nil {
		return nil, err
	}

	return s.GetSchedule(ctx, req.CoachID)
}

// AddOverride добавляет или заменяет исключение на дату
// На одну дату возможен только один override - повторная запись перезаписывает предыдущую
func (s *Service) AddOverride(ctx context.Context, req *models.AddOverrideRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("AddOverride: coach=%d, date=%s, available=%t", req.CoachID, req.Date, req.IsAvailable)

	override, err := validateOverride(req)
	if err != nil {
		s.logger.Warn("AddOverride: invalid override for coach=%d: %v", req.CoachID, err)
		return nil, err
	}

	if err := s.mutateProfile(ctx, req.CoachID, nil, func(ctx context.Context, profile *domain.CoachAvailability) error {
		return s.repo.UpsertOverride(ctx, req.CoachID, *override)
	}); err != nil {
		return nil, err
	}

	return s.GetSchedule(ctx, req.CoachID)
}

// RemoveOverride удаляет исключение на дату
func (s *Service) RemoveOverride(ctx context.Context, coachID int64, date string) error {
	s.logger.Info("RemoveOverride: coach=%d, date=%s", coachID, date)

	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	return s.mutateProfile(ctx, coachID, nil, func(ctx context.Context, profile *domain.CoachAvailability) error {
		return s.repo.DeleteOverride(ctx, coachID, parsed)
	})
}

// UpdateSettings частично обновляет настройки профиля
// Обновляются только переданные поля
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSettings: coach=%d", req.CoachID)

	if err := s.mutateProfile(ctx, req.CoachID, req.ExpectedVersion, func(ctx context.Context, profile *domain.CoachAvailability) error {
		applySettings(profile, req)
		if err := validateSettings(profile); err != nil {
			return err
		}
		return s.repo.UpdateSettings(ctx, profile)
	}); err != nil {
		return nil, err
	}

	return s.GetSchedule(ctx, req.CoachID)
}

// mutateProfile выполняет мутацию профиля в serializable-транзакции
// Перед мутацией версия профиля инкрементируется с проверкой ожидаемой,
// что блокирует строку профиля и сериализует конкурентных писателей
// Если expectedVersion передан клиентом - проверяется она, иначе версия
// только что прочитанного профиля
func (s *Service) mutateProfile(ctx context.Context, coachID int64, expectedVersion *int64, fn func(ctx context.Context, profile *domain.CoachAvailability) error) error {
	profile, err := s.GetOrCreateProfile(ctx, coachID)
	if err != nil {
		return err
	}

	version := profile.Version
	if expectedVersion != nil {
		version = *expectedVersion
	}

	txErr := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.repo.BumpVersion(ctx, coachID, version); err != nil {
			return err
		}
		return fn(ctx, profile)
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, availabilityRepo.ErrProfileNotFound):
			return ErrProfileNotFound
		case errors.Is(txErr, availabilityRepo.ErrVersionConflict):
			s.logger.Warn("mutateProfile: version conflict for coach=%d, version=%d", coachID, version)
			return ErrVersionConflict
		case errors.Is(txErr, availabilityRepo.ErrOverrideNotFound):
			return ErrOverrideNotFound
		case errors.Is(txErr, ErrInvalidInput):
			return txErr
		default:
			s.logger.Error("mutateProfile: transaction failed for coach=%d: %v", coachID, txErr)
			return fmt.Errorf("%w: mutateProfile - transaction failed: %v", ErrInternal, txErr)
		}
	}

	return nil
}

// defaultProfile собирает дефолтный профиль для нового коуча
func defaultProfile(coachID int64) *domain.CoachAvailability {
	recurring := make([]domain.RecurringAvailability, 0, 5)
	for day := 1; day <= 5; day++ {
		recurring = append(recurring, domain.RecurringAvailability{
			DayOfWeek: day,
			StartTime: types.TimeString(domain.DefaultWorkdayStart),
			EndTime:   types.TimeString(domain.DefaultWorkdayEnd),
			IsActive:  true,
		})
	}

	return &domain.CoachAvailability{
		CoachID:                coachID,
		Timezone:               domain.DefaultTimezone,
		Recurring:              recurring,
		Buffers:                domain.BufferSettings{},
		DefaultSessionDuration: domain.DefaultSessionDurationMinutes,
		AllowedDurations:       append([]int(nil), domain.DefaultAllowedDurations...),
		AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
		LastMinuteBookingHours: domain.DefaultLastMinuteBookingHours,
		ApprovalMode:           domain.DefaultApprovalMode,
	}
}

// validateRecurringSlots проверяет еженедельные окна: формат времени, границы,
// отсутствие пересечений внутри одного дня
func validateRecurringSlots(slots []models.RecurringSlotInput) error {
	type window struct {
		start, end types.TimeString
	}
	byDay := make(map[int][]window)

	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be between 0 and 6, got %d", ErrInvalidInput, slot.DayOfWeek)
		}

		start := types.TimeString(slot.StartTime)
		end := types.TimeString(slot.EndTime)
		if !start.IsValid() || !end.IsValid() {
			return fmt.Errorf("%w: times must be in HH:MM format, got %q-%q", ErrInvalidInput, slot.StartTime, slot.EndTime)
		}

		// Окна через полночь не поддерживаются - такое окно задаётся двумя записями
		if !end.IsAfter(start) {
			return fmt.Errorf("%w: endTime must be after startTime within the same day, got %s-%s", ErrInvalidInput, slot.StartTime, slot.EndTime)
		}

		byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], window{start: start, end: end})
	}

	for day, windows := range byDay {
		sort.Slice(windows, func(i, j int) bool { return windows[i].start.IsBefore(windows[j].start) })
		for i := 1; i < len(windows); i++ {
			if windows[i].start.IsBefore(windows[i-1].end) {
				return fmt.Errorf("%w: overlapping windows on dayOfWeek=%d", ErrInvalidInput, day)
			}
		}
	}

	return nil
}

// validateOverride проверяет и конвертирует запрос на добавление override
func validateOverride(req *models.AddOverrideRequest) (*domain.DateOverride, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format, got %q", ErrInvalidInput, req.Date)
	}

	reason := domain.OverrideReason(req.Reason)
	if req.Reason != "" && !reason.IsValid() {
		return nil, fmt.Errorf("%w: unknown override reason %q", ErrInvalidInput, req.Reason)
	}

	override := &domain.DateOverride{
		Date:        date,
		IsAvailable: req.IsAvailable,
		Reason:      reason,
	}

	if !req.IsAvailable {
		// Для блокирующего override окна не имеют смысла
		if len(req.TimeSlots) > 0 {
			return nil, fmt.Errorf("%w: timeSlots are not allowed when isAvailable is false", ErrInvalidInput)
		}
		return override, nil
	}

	if len(req.TimeSlots) == 0 {
		return nil, fmt.Errorf("%w: timeSlots are required when isAvailable is true", ErrInvalidInput)
	}

	var prevEnd types.TimeString
	slots := make([]domain.OverrideTimeSlot, 0, len(req.TimeSlots))
	for _, slot := range req.TimeSlots {
		start := types.TimeString(slot.StartTime)
		end := types.TimeString(slot.EndTime)
		if !start.IsValid() || !end.IsValid() {
			return nil, fmt.Errorf("%w: times must be in HH:MM format, got %q-%q", ErrInvalidInput, slot.StartTime, slot.EndTime)
		}

		if !end.IsAfter(start) {
			return nil, fmt.Errorf("%w: endTime must be after startTime, got %s-%s", ErrInvalidInput, slot.StartTime, slot.EndTime)
		}
		if start.IsBefore(prevEnd) {
			return nil, fmt.Errorf("%w: override timeSlots must be sorted and non-overlapping", ErrInvalidInput)
		}
		prevEnd = end

		slots = append(slots, domain.OverrideTimeSlot{StartTime: start, EndTime: end})
	}
	override.TimeSlots = slots

	return override, nil
}

// applySettings накладывает частичное обновление на профиль
func applySettings(profile *domain.CoachAvailability, req *models.UpdateSettingsRequest) {
	if req.Timezone != nil {
		profile.Timezone = *req.Timezone
	}
	if req.BufferBeforeMinutes != nil {
		profile.Buffers.BeforeSessionMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		profile.Buffers.AfterSessionMinutes = *req.BufferAfterMinutes
	}
	if req.BufferBetweenMinutes != nil {
		profile.Buffers.BetweenSessionsMinutes = *req.BufferBetweenMinutes
	}
	if req.DefaultSessionDuration != nil {
		profile.DefaultSessionDuration = *req.DefaultSessionDuration
	}
	if req.AllowedDurations != nil {
		profile.AllowedDurations = req.AllowedDurations
	}
	if req.AdvanceBookingDays != nil {
		profile.AdvanceBookingDays = *req.AdvanceBookingDays
	}
	if req.LastMinuteBookingHours != nil {
		profile.LastMinuteBookingHours = *req.LastMinuteBookingHours
	}
	if req.ApprovalMode != nil {
		profile.ApprovalMode = domain.ApprovalMode(*req.ApprovalMode)
	}
}

// validateSettings проверяет бизнес-границы настроек профиля
func validateSettings(profile *domain.CoachAvailability) error {
	if _, err := time.LoadLocation(profile.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, profile.Timezone)
	}

	buffers := []int{
		profile.Buffers.BeforeSessionMinutes,
		profile.Buffers.AfterSessionMinutes,
		profile.Buffers.BetweenSessionsMinutes,
	}
	for _, buffer := range buffers {
		if buffer < domain.MinBufferMinutes || buffer > domain.MaxBufferMinutes {
			return fmt.Errorf("%w: buffer must be between %d and %d minutes, got %d",
				ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes, buffer)
		}
	}

	if len(profile.AllowedDurations) == 0 {
		return fmt.Errorf("%w: allowedDurations must not be empty", ErrInvalidInput)
	}
	for _, duration := range profile.AllowedDurations {
		if duration < domain.MinSessionDurationMinutes || duration > domain.MaxSessionDurationMinutes {
			return fmt.Errorf("%w: session duration must be between %d and %d minutes, got %d",
				ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes, duration)
		}
	}

	if !profile.IsDurationAllowed(profile.DefaultSessionDuration) {
		return fmt.Errorf("%w: defaultSessionDuration %d is not in allowedDurations",
			ErrInvalidInput, profile.DefaultSessionDuration)
	}

	if profile.AdvanceBookingDays < domain.MinAdvanceBookingDays || profile.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d, got %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays, profile.AdvanceBookingDays)
	}

	if profile.LastMinuteBookingHours < domain.MinLastMinuteBookingHours || profile.LastMinuteBookingHours > domain.MaxLastMinuteBookingHours {
		return fmt.Errorf("%w: lastMinuteBookingHours must be between %d and %d, got %d",
			ErrInvalidInput, domain.MinLastMinuteBookingHours, domain.MaxLastMinuteBookingHours, profile.LastMinuteBookingHours)
	}

	if !profile.ApprovalMode.IsValid() {
		return fmt.Errorf("%w: unknown approval mode %q", ErrInvalidInput, profile.ApprovalMode)
	}

	return nil
}
