package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	"github.com/m04kA/CMP-AvailabilityService/internal/engine"
	sessionClient "github.com/m04kA/CMP-AvailabilityService/internal/integrations/sessionservice"
)

// UseCase use case для получения доступных слотов коуча
type UseCase struct {
	availability  AvailabilityService
	sessionClient SessionServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityService,
	sessionClient SessionServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:  availability,
		sessionClient: sessionClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: coach=%d, from=%s, to=%s, duration=%d",
		req.CoachID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем профиль доступности (с сидированием дефолтного)
	profile, err := uc.availability.GetOrCreateProfile(ctx, req.CoachID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get profile for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get availability profile: %v", ErrInternal, err)
	}

	// 4. Определяем длительность: 0 означает дефолтную длительность коуча
	duration := req.DurationMinutes
	if duration == 0 {
		duration = profile.DefaultSessionDuration
	}
	if !profile.IsDurationAllowed(duration) {
		uc.logger.Warn("GetAvailableSlots: duration=%d not allowed for coach=%d", duration, req.CoachID)
		return nil, fmt.Errorf("%w: duration=%d, allowed=%v", ErrDurationNotAllowed, duration, profile.AllowedDurations)
	}

	// 5. Получаем занятые интервалы коуча
	// Pending-сессии занимают слоты только при ручном подтверждении бронирований
	statuses := domain.BlockingStatuses
	if profile.RequiresApproval() {
		statuses = domain.BlockingStatusesWithPending
	}

	busy, err := uc.sessionClient.ListBusyIntervals(ctx, req.CoachID, req.From, req.To, statuses)
	if err != nil {
		if errors.Is(err, sessionClient.ErrServiceUnavailable) {
			uc.logger.Error("GetAvailableSlots: SessionService unavailable for coach=%d: %v", req.CoachID, err)
			return nil, fmt.Errorf("%w: %v", ErrSessionsUnavailable, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to list sessions for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to list sessions: %v", ErrInternal, err)
	}

	// 6. Прогоняем полный пайплайн генерации слотов
	slots, err := engine.AvailableSlots(ctx, profile, busy, req.From, req.To, duration, now, req.IncludeBlocked)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrDurationNotAllowed):
			return nil, fmt.Errorf("%w: duration=%d", ErrDurationNotAllowed, duration)
		case errors.Is(err, engine.ErrRangeTooLarge):
			return nil, ErrRangeTooLarge
		case errors.Is(err, engine.ErrInvalidInput), errors.Is(err, engine.ErrInvalidTimezone), errors.Is(err, engine.ErrInvalidWindow):
			uc.logger.Warn("GetAvailableSlots: engine rejected input for coach=%d: %v", req.CoachID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("GetAvailableSlots: engine failed for coach=%d: %v", req.CoachID, err)
			return nil, fmt.Errorf("%w: slot generation failed: %v", ErrInternal, err)
		}
	}

	// 7. Формируем ответ
	response := &Response{
		CoachID:         req.CoachID,
		Timezone:        profile.Timezone,
		From:            req.From,
		To:              req.To,
		DurationMinutes: duration,
		Slots:           make([]Slot, 0, len(slots)),
	}

	available := 0
	for _, slot := range slots {
		if slot.IsAvailable {
			available++
		}
		response.Slots = append(response.Slots, Slot{
			StartTime:      slot.Start,
			EndTime:        slot.End,
			IsAvailable:    slot.IsAvailable,
			ConflictReason: string(slot.ConflictReason),
		})
	}

	uc.logger.Info("GetAvailableSlots: coach=%d, generated %d slots (%d available)",
		req.CoachID, len(response.Slots), available)

	return response, nil
}
