package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// localWindow окно доступности в пределах одного календарного дня
type localWindow struct {
	start types.TimeString
	end   types.TimeString
}

// Generate генерирует кандидатов-слотов для профиля на диапазоне [rangeStart, rangeEnd)
// Буферы, конфликты с бронированиями и окно бронирования здесь НЕ учитываются -
// это последующие стадии конвейера
//
// Алгоритм по каждому календарному дню в таймзоне профиля:
//  1. Override с isAvailable=false - день заблокирован (при includeBlockedDays
//     слоты из еженедельных окон всё же эмитятся с reason=override_blocked,
//     чтобы preview мог объяснить "почему нет слотов")
//  2. Override с isAvailable=true - его timeSlots полностью ЗАМЕНЯЮТ еженедельные окна
//  3. Иначе - активные еженедельные окна для этого дня недели
//
// Каждое окно нарезается на последовательные слоты длиной durationMinutes от начала окна,
// неполный хвост отбрасывается. Момент времени каждой границы строится через time.Date
// в локации профиля, поэтому смещение UTC берётся отдельно для каждой даты -
// переходы на летнее/зимнее время обрабатываются корректно, offset не кешируется
//
// Отмена через ctx проверяется на границе каждого дня: работа останавливается
// целиком, частичный результат не возвращается
func Generate(
	ctx context.Context,
	profile *domain.CoachAvailability,
	rangeStart time.Time,
	rangeEnd time.Time,
	durationMinutes int,
	includeBlockedDays bool,
) ([]domain.AvailableSlot, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}

	if !rangeEnd.After(rangeStart) {
		return nil, fmt.Errorf("%w: rangeEnd must be after rangeStart", ErrInvalidInput)
	}

	if rangeEnd.Sub(rangeStart) > time.Duration(domain.MaxRangeDays)*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days, paginate the request", ErrRangeTooLarge, domain.MaxRangeDays)
	}

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if !profile.IsDurationAllowed(durationMinutes) {
		return nil, fmt.Errorf("%w: %d minutes is not in allowed durations", ErrDurationNotAllowed, durationMinutes)
	}

	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, profile.Timezone, err)
	}

	slots := make([]domain.AvailableSlot, 0)

	// Идём по календарным дням в таймзоне профиля
	localStart := rangeStart.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)

	for day.Before(rangeEnd) {
		// Отмена наблюдаема на границе дня
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		daySlots, err := generateDay(profile, day, loc, durationMinutes, includeBlockedDays)
		if err != nil {
			return nil, err
		}

		// Обрезаем по границам запрошенного диапазона
		for _, slot := range daySlots {
			if slot.Start.Before(rangeStart) || !slot.Start.Before(rangeEnd) {
				continue
			}
			slots = append(slots, slot)
		}

		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots, nil
}

// generateDay генерирует слоты для одного календарного дня
func generateDay(
	profile *domain.CoachAvailability,
	day time.Time,
	loc *time.Location,
	durationMinutes int,
	includeBlockedDays bool,
) ([]domain.AvailableSlot, error) {
	windows, blocked := windowsForDay(profile, day)

	if blocked && !includeBlockedDays {
		return nil, nil
	}

	slots := make([]domain.AvailableSlot, 0)

	for _, window := range windows {
		tiled, err := tileWindow(day, loc, window, durationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, tiled...)
	}

	if blocked {
		for i := range slots {
			slots[i].IsAvailable = false
			slots[i].ConflictReason = domain.ConflictOverrideBlocked
		}
	}

	return slots, nil
}

// windowsForDay возвращает окна доступности на календарный день
// и признак того, что день заблокирован override-ом
// Для заблокированного дня возвращаются еженедельные окна (нужны для preview)
func windowsForDay(profile *domain.CoachAvailability, day time.Time) ([]localWindow, bool) {
	override := profile.OverrideForDate(day)

	if override != nil && !override.IsAvailable {
		return recurringWindows(profile, day), true
	}

	if override != nil {
		// Кастомные слоты override-а заменяют (не дополняют) еженедельное расписание
		windows := make([]localWindow, 0, len(override.TimeSlots))
		for _, slot := range override.TimeSlots {
			windows = append(windows, localWindow{start: slot.StartTime, end: slot.EndTime})
		}
		return windows, false
	}

	return recurringWindows(profile, day), false
}

func recurringWindows(profile *domain.CoachAvailability, day time.Time) []localWindow {
	entries := profile.RecurringForDay(day.Weekday())
	windows := make([]localWindow, 0, len(entries))
	for _, entry := range entries {
		windows = append(windows, localWindow{start: entry.StartTime, end: entry.EndTime})
	}
	return windows
}

// tileWindow нарезает окно [wStart, wEnd) на слоты фиксированной длительности
// Окно короче длительности даёт ноль слотов, неполный хвост отбрасывается
func tileWindow(day time.Time, loc *time.Location, window localWindow, durationMinutes int) ([]domain.AvailableSlot, error) {
	startMinutes, err := window.start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	endMinutes, err := window.end.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	if endMinutes <= startMinutes {
		return nil, fmt.Errorf("%w: end %s must be after start %s", ErrInvalidWindow, window.end, window.start)
	}

	slots := make([]domain.AvailableSlot, 0, (endMinutes-startMinutes)/durationMinutes)

	for cur := startMinutes; cur+durationMinutes <= endMinutes; cur += durationMinutes {
		slots = append(slots, domain.AvailableSlot{
			Start:       instantAt(day, loc, cur),
			End:         instantAt(day, loc, cur+durationMinutes),
			IsAvailable: true,
		})
	}

	return slots, nil
}

// instantAt строит абсолютный момент времени для локальных минут от начала дня
// time.Date применяет смещение UTC, действующее именно в эту дату в этой локации
func instantAt(day time.Time, loc *time.Location, minutesFromMidnight int) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		minutesFromMidnight/60, minutesFromMidnight%60, 0, 0,
		loc,
	)
}
