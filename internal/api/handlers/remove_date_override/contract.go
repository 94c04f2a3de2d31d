package remove_date_override

import "context"

type AvailabilityService interface {
	RemoveOverride(ctx context.Context, coachID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
