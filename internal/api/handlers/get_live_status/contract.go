package get_live_status

import (
	"context"

	getLiveStatus "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_live_status"
)

type GetLiveStatusUseCase interface {
	Execute(ctx context.Context, req *getLiveStatus.Request) (*getLiveStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
