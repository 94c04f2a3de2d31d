package sessionservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sessionservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("sessionservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда SessionService недоступен
	// Расчёт слотов без актуальных сессий невозможен - деградировать нельзя,
	// иначе отдадим клиентам уже занятые слоты
	ErrServiceUnavailable = errors.New("sessionservice unavailable")
)
