package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат локального времени "HH:MM"
const TimeFormat = "15:04"

// TimeString локальное время в формате "HH:MM" (без даты и таймзоны)
// Используется для хранения границ окон доступности, которые интерпретируются
// в таймзоне владельца расписания
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	if _, err := time.Parse(TimeFormat, s); err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %w", s, err)
	}
	return TimeString(s), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsValid проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) IsValid() bool {
	_, err := time.Parse(TimeFormat, string(t))
	return err == nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q: %w", string(t), err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore проверяет, что время строго раньше другого
// Лексикографическое сравнение "HH:MM" совпадает с хронологическим
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже другого
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}

	// Postgres тип TIME отдаёт значение с секундами ("09:00:00")
	if len(*t) > 5 {
		*t = (*t)[:5]
	}

	return nil
}
