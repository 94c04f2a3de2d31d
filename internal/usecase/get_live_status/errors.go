package get_live_status

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль доступности не найден
	ErrProfileNotFound = errors.New("availability profile not found")

	// ErrSessionsUnavailable возвращается, когда SessionService недоступен
	ErrSessionsUnavailable = errors.New("sessions are temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
