package engine

import (
	"sort"
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

// ExclusionZone расширенный буферами интервал вокруг занятой сессии
// Кандидаты-слоты не должны пересекать зону
type ExclusionZone struct {
	Start time.Time
	End   time.Time
	// SessionEnd сырой конец занятой сессии (без буфера) - нужен для живого статуса
	SessionEnd time.Time
}

// Contains проверяет, что момент времени лежит внутри зоны [Start, End)
func (z ExclusionZone) Contains(t time.Time) bool {
	return !t.Before(z.Start) && t.Before(z.End)
}

// Overlaps проверяет реальное пересечение зоны с интервалом [start, end)
// Граничащие интервалы пересечением не считаются
func (z ExclusionZone) Overlaps(start, end time.Time) bool {
	return z.Start.Before(end) && z.End.After(start)
}

// BuildExclusionZones строит exclusion zone для каждого занятого интервала:
// [busy.start - pad, busy.end + pad], где pad = max(beforeSession, afterSession)
// Зазор между слотом и бронью обязан выдерживать больший из двух буферов
// с обеих сторон - односторонний отступ ломает инвариант при асимметричных буферах
// Результат отсортирован по началу зоны
func BuildExclusionZones(busy []domain.BusyInterval, buffers domain.BufferSettings) []ExclusionZone {
	zones := make([]ExclusionZone, 0, len(busy))

	pad := time.Duration(buffers.BeforeSessionMinutes) * time.Minute
	if after := time.Duration(buffers.AfterSessionMinutes) * time.Minute; after > pad {
		pad = after
	}

	for _, interval := range busy {
		zones = append(zones, ExclusionZone{
			Start:      interval.Start.Add(-pad),
			End:        interval.End.Add(pad),
			SessionEnd: interval.End,
		})
	}

	sort.Slice(zones, func(i, j int) bool {
		return zones[i].Start.Before(zones[j].Start)
	})

	return zones
}

// mergeZones сливает пересекающиеся зоны в непересекающиеся интервалы
// Вход должен быть отсортирован по Start
// Используется для линейного sweep-прохода по кандидатам
func mergeZones(zones []ExclusionZone) []ExclusionZone {
	if len(zones) == 0 {
		return nil
	}

	merged := make([]ExclusionZone, 0, len(zones))
	current := zones[0]

	for _, zone := range zones[1:] {
		if !zone.Start.After(current.End) {
			// Зоны пересекаются или граничат - расширяем текущую
			if zone.End.After(current.End) {
				current.End = zone.End
			}
			if zone.SessionEnd.After(current.SessionEnd) {
				current.SessionEnd = zone.SessionEnd
			}
			continue
		}

		merged = append(merged, current)
		current = zone
	}

	return append(merged, current)
}
