package domain

import (
	"time"

	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// ApprovalMode режим подтверждения бронирований
// Заменяет пару флагов autoAcceptBookings/requireApproval, которые могли
// противоречить друг другу
type ApprovalMode string

const (
	// ApprovalAuto бронирование подтверждается автоматически
	ApprovalAuto ApprovalMode = "auto"
	// ApprovalManual бронирование требует ручного подтверждения коуча
	ApprovalManual ApprovalMode = "manual"
)

// IsValid проверяет, что режим подтверждения допустим
func (m ApprovalMode) IsValid() bool {
	return m == ApprovalAuto || m == ApprovalManual
}

// OverrideReason причина разового изменения расписания
type OverrideReason string

const (
	ReasonVacation OverrideReason = "vacation"
	ReasonSick     OverrideReason = "sick"
	ReasonPersonal OverrideReason = "personal"
	ReasonTraining OverrideReason = "training"
	ReasonOther    OverrideReason = "other"
)

// IsValid проверяет, что причина допустима
func (r OverrideReason) IsValid() bool {
	switch r {
	case ReasonVacation, ReasonSick, ReasonPersonal, ReasonTraining, ReasonOther:
		return true
	default:
		return false
	}
}

// RecurringAvailability еженедельно повторяющееся окно доступности
// Времена - локальные ("HH:MM") в таймзоне коуча, окно не пересекает полночь
type RecurringAvailability struct {
	DayOfWeek int // 0 = воскресенье ... 6 = суббота (time.Weekday)
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// OverrideTimeSlot окно доступности внутри date override
type OverrideTimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DateOverride разовое исключение из расписания на конкретную дату
// Если IsAvailable=false - день полностью заблокирован
// Если IsAvailable=true - TimeSlots полностью заменяют еженедельные окна на эту дату
type DateOverride struct {
	Date        time.Time // дата без времени, в таймзоне коуча
	IsAvailable bool
	Reason      OverrideReason
	TimeSlots   []OverrideTimeSlot // только при IsAvailable=true
}

// BufferSettings буферное время вокруг сессий в минутах
type BufferSettings struct {
	BeforeSessionMinutes   int
	AfterSessionMinutes    int
	BetweenSessionsMinutes int
}

// CoachAvailability агрегат настроек доступности коуча
// Неизменяемый снимок: движок генерации слотов никогда не мутирует его
type CoachAvailability struct {
	CoachID  int64
	Timezone string // IANA имя, например "Europe/Moscow"

	Recurring []RecurringAvailability
	Overrides []DateOverride
	Buffers   BufferSettings

	DefaultSessionDuration int   // минуты
	AllowedDurations       []int // непустой, содержит DefaultSessionDuration

	AdvanceBookingDays     int // максимум дней вперед, >= 1
	LastMinuteBookingHours int // минимум часов до начала, >= 0

	ApprovalMode ApprovalMode

	// Оптимистичная блокировка: каждая запись инкрементирует Version
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecurringForDay возвращает активные еженедельные окна для дня недели
func (a *CoachAvailability) RecurringForDay(weekday time.Weekday) []RecurringAvailability {
	var windows []RecurringAvailability
	for _, entry := range a.Recurring {
		if entry.IsActive && entry.DayOfWeek == int(weekday) {
			windows = append(windows, entry)
		}
	}
	return windows
}

// OverrideForDate возвращает override на указанную дату, если он есть
// Дата сравнивается по календарному дню (год, месяц, число)
func (a *CoachAvailability) OverrideForDate(date time.Time) *DateOverride {
	y, m, d := date.Date()
	for i := range a.Overrides {
		oy, om, od := a.Overrides[i].Date.Date()
		if oy == y && om == m && od == d {
			return &a.Overrides[i]
		}
	}
	return nil
}

// IsDurationAllowed проверяет, что длительность сессии входит в разрешенные
func (a *CoachAvailability) IsDurationAllowed(durationMinutes int) bool {
	for _, allowed := range a.AllowedDurations {
		if allowed == durationMinutes {
			return true
		}
	}
	return false
}

// RequiresApproval возвращает true, если бронирования требуют ручного подтверждения
// В этом режиме pending-сессии тоже блокируют слоты
func (a *CoachAvailability) RequiresApproval() bool {
	return a.ApprovalMode == ApprovalManual
}
