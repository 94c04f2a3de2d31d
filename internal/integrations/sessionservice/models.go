package sessionservice

import "time"

// Session модель сессии из SessionService
type Session struct {
	ID        int64     `json:"id"`
	CoachID   int64     `json:"coach_id"`
	ClientID  int64     `json:"client_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

// sessionsResponse ответ SessionService на запрос списка сессий
type sessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

// ErrorResponse модель ошибки от SessionService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
