package update_recurring_schedule

import (
	"context"

	"github.com/m04kA/CMP-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	ReplaceRecurring(ctx context.Context, req *models.ReplaceRecurringRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
