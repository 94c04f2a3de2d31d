package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// AvailabilityService интерфейс сервиса профилей доступности
type AvailabilityService interface {
	GetOrCreateProfile(ctx context.Context, coachID int64) (*domain.CoachAvailability, error)
}

// SessionServiceClient интерфейс клиента для SessionService
type SessionServiceClient interface {
	ListBusyIntervals(ctx context.Context, coachID int64, from, to time.Time, statuses []domain.SessionStatus) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
