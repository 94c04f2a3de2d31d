package availability

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль доступности не найден
	ErrProfileNotFound = errors.New("availability.repository: profile not found")

	// ErrProfileAlreadyExists возвращается при попытке повторно создать профиль коуча
	ErrProfileAlreadyExists = errors.New("availability.repository: profile already exists")

	// ErrOverrideNotFound возвращается, когда override на дату не найден
	ErrOverrideNotFound = errors.New("availability.repository: date override not found")

	// ErrVersionConflict возвращается при несовпадении ожидаемой версии профиля
	// Писатель должен перечитать профиль и повторить запись
	ErrVersionConflict = errors.New("availability.repository: profile version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
