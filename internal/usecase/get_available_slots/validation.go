package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// validateRequest проверяет базовую корректность запроса
// Проверки, зависящие от профиля коуча (разрешенные длительности), выполняются позже
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive, got %d", ErrInvalidInput, req.CoachID)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > time.Duration(domain.MaxRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrRangeTooLarge, domain.MaxRangeDays)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative, got %d", ErrInvalidInput, req.DurationMinutes)
	}

	return nil
}
