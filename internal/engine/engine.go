package engine

import (
	"context"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// AvailableSlots прогоняет полный конвейер генерации:
// генерация кандидатов -> буферы/конфликты с бронированиями -> окно бронирования
//
// Движок - семейство чистых функций над неизменяемыми снимками профиля и занятых
// интервалов: ничего не персистит, не ретраит и не мутирует входные данные
func AvailableSlots(
	ctx context.Context,
	profile *domain.CoachAvailability,
	busy []domain.BusyInterval,
	rangeStart time.Time,
	rangeEnd time.Time,
	durationMinutes int,
	now time.Time,
	includeBlockedDays bool,
) ([]domain.AvailableSlot, error) {
	candidates, err := Generate(ctx, profile, rangeStart, rangeEnd, durationMinutes, includeBlockedDays)
	if err != nil {
		return nil, err
	}

	filtered := FilterConflicts(candidates, busy, profile.Buffers)

	return ValidateWindow(filtered, now, profile.LastMinuteBookingHours, profile.AdvanceBookingDays), nil
}
