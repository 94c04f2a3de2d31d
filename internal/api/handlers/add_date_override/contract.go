package add_date_override

import (
	"context"

	"github.com/m04kA/CMP-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddOverride(ctx context.Context, req *models.AddOverrideRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
