package domain

// Default configuration values
const (
	DefaultSessionDurationMinutes = 60
	DefaultAdvanceBookingDays     = 30
	DefaultLastMinuteBookingHours = 1
	DefaultTimezone               = "UTC"
	DefaultApprovalMode           = ApprovalAuto

	// Дефолтное еженедельное расписание: Пн-Пт 09:00-17:00
	DefaultWorkdayStart = "09:00"
	DefaultWorkdayEnd   = "17:00"
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 480 // 8 часов

	MinBufferMinutes = 0
	MaxBufferMinutes = 240 // 4 часа

	MinAdvanceBookingDays = 1
	MaxAdvanceBookingDays = 365

	MinLastMinuteBookingHours = 0
	MaxLastMinuteBookingHours = 168 // 1 неделя

	// MaxRangeDays предохранитель на ширину запрашиваемого диапазона дат:
	// более широкие запросы должны пагинироваться
	MaxRangeDays = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultAllowedDurations разрешенные длительности сессий по умолчанию
var DefaultAllowedDurations = []int{30, 60, 90}

// BlockingStatuses статусы сессий, которые занимают слоты
// Pending-сессии блокируют слоты только при ручном подтверждении бронирований
var BlockingStatuses = []SessionStatus{
	SessionConfirmed,
}

// BlockingStatusesWithPending статусы, занимающие слоты при ApprovalManual
var BlockingStatusesWithPending = []SessionStatus{
	SessionConfirmed,
	SessionPending,
}
