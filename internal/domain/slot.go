package domain

import "time"

// SessionStatus статус сессии во внешнем SessionService
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionConfirmed SessionStatus = "confirmed"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// ConflictReason причина, по которой слот недоступен для бронирования
type ConflictReason string

const (
	// ConflictNone слот доступен
	ConflictNone ConflictReason = ""
	// ConflictBooked слот пересекается с exclusion zone занятой сессии
	// или нарушает буфер между сессиями
	ConflictBooked ConflictReason = "booked"
	// ConflictOutsideWindow слот вне допустимого окна бронирования
	ConflictOutsideWindow ConflictReason = "outside_window"
	// ConflictOverrideBlocked день заблокирован date override
	ConflictOverrideBlocked ConflictReason = "override_blocked"
)

// BusyInterval занятый интервал из SessionService (read-only вход движка)
type BusyInterval struct {
	Start  time.Time
	End    time.Time
	Status SessionStatus
}

// Duration возвращает длительность интервала
func (b BusyInterval) Duration() time.Duration {
	return b.End.Sub(b.Start)
}

// AvailableSlot кандидат на бронирование
// Эфемерное значение: генерируется на каждый запрос заново и никогда не персистится
type AvailableSlot struct {
	Start          time.Time
	End            time.Time
	IsAvailable    bool
	ConflictReason ConflictReason
}

// Overlaps проверяет реальное пересечение слота с интервалом [start, end)
// Граничащие интервалы (конец одного равен началу другого) не пересекаются
func (s AvailableSlot) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && s.End.After(start)
}

// AvailabilityStatus живой статус доступности коуча
type AvailabilityStatus struct {
	IsCurrentlyAvailable bool
	// CurrentSessionEnd конец текущей занятой сессии, если "сейчас" внутри её exclusion zone
	CurrentSessionEnd *time.Time
	// NextAvailableSlot начало ближайшего доступного слота строго после "сейчас",
	// nil если в горизонте AdvanceBookingDays ничего нет (это не ошибка)
	NextAvailableSlot *time.Time
}
