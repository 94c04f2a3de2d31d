package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	CoachID         int64     // ID коуча
	From            time.Time // Начало диапазона (включительно)
	To              time.Time // Конец диапазона (исключительно)
	DurationMinutes int       // Длительность сессии; 0 = дефолтная длительность коуча
	IncludeBlocked  bool      // Показывать слоты заблокированных override-дней (для превью расписания)
}

// Response модель ответа со списком слотов
type Response struct {
	CoachID         int64     // ID коуча
	Timezone        string    // Таймзона коуча
	From            time.Time // Начало диапазона
	To              time.Time // Конец диапазона
	DurationMinutes int       // Фактическая длительность сессии
	Slots           []Slot    // Все слоты диапазона, включая недоступные с причиной
}

// Slot модель слота в ответе
type Slot struct {
	StartTime      time.Time // Начало слота (UTC)
	EndTime        time.Time // Конец слота (UTC)
	IsAvailable    bool      // Можно ли бронировать слот
	ConflictReason string    // Причина недоступности; пустая строка для доступных слотов
}
