package engine

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDurationNotAllowed возвращается, когда длительность не входит в allowedDurations
	ErrDurationNotAllowed = errors.New("session duration is not allowed")

	// ErrRangeTooLarge возвращается, когда запрошенный диапазон шире предохранителя
	// Вызывающая сторона должна пагинировать запрос
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrInvalidTimezone возвращается при неизвестной IANA таймзоне профиля
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidWindow возвращается при некорректном окне доступности
	// (неправильный формат времени или конец не позже начала)
	ErrInvalidWindow = errors.New("invalid availability window")
)
