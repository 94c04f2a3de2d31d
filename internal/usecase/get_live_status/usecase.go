package get_live_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	"github.com/m04kA/CMP-AvailabilityService/internal/engine"
	sessionClient "github.com/m04kA/CMP-AvailabilityService/internal/integrations/sessionservice"
)

// UseCase use case для получения живого статуса коуча
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

// Execute выполняет use case получения живого статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.CoachID <= 0 {
		return nil, fmt.Errorf("%w: coachID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("GetLiveStatus: coach=%d", req.CoachID)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Получаем профиль доступности
	profile, err := uc.availability.GetOrCreateProfile(ctx, req.CoachID)
	if err != nil {
		uc.logger.Error("GetLiveStatus: failed to get profile for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to get availability profile: %v", ErrInternal, err)
	}

	// 3. Получаем занятые интервалы на весь горизонт бронирования:
	// поиск ближайшего слота может уйти на AdvanceBookingDays вперед.
	// Начало запроса сдвинуто назад на максимальный буфер: сессия, закончившаяся
	// перед now, всё ещё может накрывать now своей exclusion zone
	fetchFrom := now.Add(-time.Duration(domain.MaxBufferMinutes) * time.Minute)
	horizon := now.AddDate(0, 0, profile.AdvanceBookingDays)

	statuses := domain.BlockingStatuses
	if profile.RequiresApproval() {
		statuses = domain.BlockingStatusesWithPending
	}

	busy, err := uc.sessionClient.ListBusyIntervals(ctx, req.CoachID, fetchFrom, horizon, statuses)
	if err != nil {
		if errors.Is(err, sessionClient.ErrServiceUnavailable) {
			uc.logger.Error("GetLiveStatus: SessionService unavailable for coach=%d: %v", req.CoachID, err)
			return nil, fmt.Errorf("%w: %v", ErrSessionsUnavailable, err)
		}
		uc.logger.Error("GetLiveStatus: failed to list sessions for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: failed to list sessions: %v", ErrInternal, err)
	}

	// 4. Считаем статус
	status, err := engine.ComputeStatus(ctx, profile, busy, now)
	if err != nil {
		uc.logger.Error("GetLiveStatus: engine failed for coach=%d: %v", req.CoachID, err)
		return nil, fmt.Errorf("%w: status computation failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GetLiveStatus: coach=%d, available=%t", req.CoachID, status.IsCurrentlyAvailable)

	return &Response{
		CoachID:              req.CoachID,
		IsCurrentlyAvailable: status.IsCurrentlyAvailable,
		CurrentSessionEnd:    status.CurrentSessionEnd,
		NextAvailableSlot:    status.NextAvailableSlot,
	}, nil
}
