package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// ComputeStatus вычисляет живой статус доступности коуча на момент now
//
//   - IsCurrentlyAvailable = true, если now попадает внутрь слота, сгенерированного
//     на день now, И не лежит в exclusion zone ни одной занятой сессии
//   - CurrentSessionEnd - сырой конец занятой сессии, в чью exclusion zone попадает now
//   - NextAvailableSlot - начало ближайшего бронируемого слота строго после now
//     в горизонте advanceBookingDays; nil, если ничего не найдено (это не ошибка)
//
// busy должен покрывать горизонт [now - максимальный буфер, now + advanceBookingDays]:
// сессия, закончившаяся перед now, может накрывать now своей exclusion zone
func ComputeStatus(
	ctx context.Context,
	profile *domain.CoachAvailability,
	busy []domain.BusyInterval,
	now time.Time,
) (*domain.AvailabilityStatus, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, profile.Timezone, err)
	}

	status := &domain.AvailabilityStatus{}

	// Exclusion zone, в которую попадает "сейчас"
	zones := BuildExclusionZones(busy, profile.Buffers)
	insideZone := false
	for _, zone := range zones {
		if zone.Contains(now) {
			insideZone = true
			sessionEnd := zone.SessionEnd
			status.CurrentSessionEnd = &sessionEnd
			break
		}
	}

	// Слоты на текущий календарный день в таймзоне профиля
	localNow := now.In(loc)
	dayStart := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	todaySlots, err := Generate(ctx, profile, dayStart, dayEnd, profile.DefaultSessionDuration, false)
	if err != nil {
		return nil, err
	}

	insideSlot := false
	for _, slot := range todaySlots {
		if !now.Before(slot.Start) && now.Before(slot.End) {
			insideSlot = true
			break
		}
	}

	status.IsCurrentlyAvailable = insideSlot && !insideZone

	// Ближайший бронируемый слот: сканируем вперёд по дням до горизонта,
	// останавливаясь на первом найденном
	horizon := now.AddDate(0, 0, profile.AdvanceBookingDays)

	for day := dayStart; day.Before(horizon); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slots, err := AvailableSlots(ctx, profile, busy, day, day.AddDate(0, 0, 1), profile.DefaultSessionDuration, now, false)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			if slot.IsAvailable && slot.Start.After(now) {
				start := slot.Start
				status.NextAvailableSlot = &start
				return status, nil
			}
		}
	}

	return status, nil
}
