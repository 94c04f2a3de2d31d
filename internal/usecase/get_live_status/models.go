package get_live_status

import "time"

// Request модель запроса живого статуса коуча
type Request struct {
	CoachID int64
}

// Response модель живого статуса коуча
type Response struct {
	CoachID              int64      // ID коуча
	IsCurrentlyAvailable bool       // Свободен ли коуч прямо сейчас
	CurrentSessionEnd    *time.Time // Когда закончится текущая сессия; nil если коуч свободен
	NextAvailableSlot    *time.Time // Ближайший бронируемый слот; nil если в горизонте слотов нет
}
