package availability

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль доступности не найден
	ErrProfileNotFound = errors.New("availability profile not found")

	// ErrOverrideNotFound возвращается, когда override на дату не найден
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrVersionConflict возвращается при конкурентном изменении профиля
	ErrVersionConflict = errors.New("profile was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
