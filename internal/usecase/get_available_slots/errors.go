package get_available_slots

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль доступности не найден
	ErrProfileNotFound = errors.New("availability profile not found")

	// ErrDurationNotAllowed возвращается, когда длительность не входит в разрешенные
	ErrDurationNotAllowed = errors.New("duration is not allowed for this coach")

	// ErrRangeTooLarge возвращается, когда запрошенный диапазон шире максимального
	ErrRangeTooLarge = errors.New("requested date range is too large")

	// ErrSessionsUnavailable возвращается, когда SessionService недоступен
	// Без актуальных сессий отдавать слоты нельзя
	ErrSessionsUnavailable = errors.New("sessions are temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
