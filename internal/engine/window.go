package engine

import (
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// ValidateWindow применяет окно бронирования к кандидатам:
// слот бронируем, только если now + lastMinuteBookingHours <= slot.start <= now + advanceBookingDays
//
// Слоты вне окна НЕ выбрасываются, а помечаются reason=outside_window -
// preview-вызовы должны уметь объяснить "почему нет слотов"
func ValidateWindow(
	candidates []domain.AvailableSlot,
	now time.Time,
	lastMinuteBookingHours int,
	advanceBookingDays int,
) []domain.AvailableSlot {
	earliest := now.Add(time.Duration(lastMinuteBookingHours) * time.Hour)
	latest := now.AddDate(0, 0, advanceBookingDays)

	result := make([]domain.AvailableSlot, 0, len(candidates))

	for _, slot := range candidates {
		if slot.IsAvailable && (slot.Start.Before(earliest) || slot.Start.After(latest)) {
			slot.IsAvailable = false
			slot.ConflictReason = domain.ConflictOutsideWindow
		}
		result = append(result, slot)
	}

	return result
}
