package update_settings

import (
	"context"

	"github.com/m04kA/CMP-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
