package availability

import (
	"context"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория профилей доступности
type AvailabilityRepository interface {
	GetByCoachID(ctx context.Context, coachID int64) (*domain.CoachAvailability, error)
	Create(ctx context.Context, profile *domain.CoachAvailability) (*domain.CoachAvailability, error)
	BumpVersion(ctx context.Context, coachID int64, expectedVersion int64) (int64, error)
	ReplaceRecurring(ctx context.Context, coachID int64, entries []domain.RecurringAvailability) error
	UpsertOverride(ctx context.Context, coachID int64, override domain.DateOverride) error
	DeleteOverride(ctx context.Context, coachID int64, date time.Time) error
	UpdateSettings(ctx context.Context, profile *domain.CoachAvailability) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
