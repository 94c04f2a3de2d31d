package engine

import (
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// FilterConflicts применяет exclusion zones занятых сессий и буфер между сессиями
// к кандидатам-слотам. Кандидаты должны быть отсортированы по началу
// (Generate возвращает их отсортированными)
//
// Слот отклоняется (помечается reason=booked), если:
//   - его сырой интервал [start, end) пересекает exclusion zone занятой сессии, либо
//   - зазор до предыдущего ПРИНЯТОГО слота меньше betweenSessions
//
// Принятие идёт слева направо: каждый принятый слот сам начинает требовать
// буфер от последующих. Буфер - это контракт между принятым/занятым интервалом
// и его соседями, а не между двумя произвольными кандидатами
//
// Зоны предварительно сливаются, поэтому проход линейный по числу кандидатов
// и зон - квадратичного перебора нет даже на больших объёмах бронирований
func FilterConflicts(
	candidates []domain.AvailableSlot,
	busy []domain.BusyInterval,
	buffers domain.BufferSettings,
) []domain.AvailableSlot {
	zones := mergeZones(BuildExclusionZones(busy, buffers))
	betweenGap := time.Duration(buffers.BetweenSessionsMinutes) * time.Minute

	result := make([]domain.AvailableSlot, 0, len(candidates))

	zoneIdx := 0
	var lastAccepted *domain.AvailableSlot

	for _, slot := range candidates {
		// Слоты, уже отклонённые предыдущими стадиями (например override_blocked),
		// не участвуют в принятии и не перезатираются
		if !slot.IsAvailable {
			result = append(result, slot)
			continue
		}

		// Sweep: зоны, закончившиеся до начала слота, больше не встретятся
		// (кандидаты и слитые зоны отсортированы по началу)
		for zoneIdx < len(zones) && !zones[zoneIdx].End.After(slot.Start) {
			zoneIdx++
		}

		if zoneIdx < len(zones) && zones[zoneIdx].Overlaps(slot.Start, slot.End) {
			slot.IsAvailable = false
			slot.ConflictReason = domain.ConflictBooked
			result = append(result, slot)
			continue
		}

		// Буфер между подряд идущими принятыми слотами
		if lastAccepted != nil && betweenGap > 0 && slot.Start.Sub(lastAccepted.End) < betweenGap {
			slot.IsAvailable = false
			slot.ConflictReason = domain.ConflictBooked
			result = append(result, slot)
			continue
		}

		result = append(result, slot)
		lastAccepted = &result[len(result)-1]
	}

	return result
}
