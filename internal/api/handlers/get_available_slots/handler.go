package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCoachID      = "некорректный ID коуча"
	msgMissingRange        = "параметры from и to обязательны"
	msgInvalidRange        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidDuration     = "некорректная длительность сессии"
	msgDurationNotAllowed  = "длительность сессии недоступна у этого коуча"
	msgRangeTooLarge       = "запрошенный диапазон дат слишком широкий"
	msgSessionsUnavailable = "сервис сессий временно недоступен, попробуйте позже"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/available-slots
// Query params: from (required, RFC3339), to (required, RFC3339),
// durationMinutes (optional), preview (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем coachId из URL
	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	// Извлекаем диапазон из query параметров
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /coaches/{id}/available-slots - Missing range: coach_id=%d", coachID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/available-slots - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	// Извлекаем опциональную длительность
	duration := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			h.logger.Warn("GET /coaches/{id}/available-slots - Invalid duration: %s", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Режим превью: показывать слоты заблокированных дней с причиной
	preview := r.URL.Query().Get("preview") == "true"

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CoachID:         coachID,
		From:            from,
		To:              to,
		DurationMinutes: duration,
		IncludeBlocked:  preview,
	})
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrDurationNotAllowed):
			h.logger.Warn("GET /coaches/{id}/available-slots - Duration not allowed: coach_id=%d, duration=%d", coachID, duration)
			handlers.RespondBadRequest(w, msgDurationNotAllowed)

		case errors.Is(err, getAvailableSlots.ErrRangeTooLarge):
			h.logger.Warn("GET /coaches/{id}/available-slots - Range too large: coach_id=%d", coachID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/available-slots - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrSessionsUnavailable):
			h.logger.Error("GET /coaches/{id}/available-slots - Sessions unavailable: coach_id=%d, error=%v", coachID, err)
			handlers.RespondServiceUnavailable(w, msgSessionsUnavailable)

		default:
			h.logger.Error("GET /coaches/{id}/available-slots - Failed to get slots: coach_id=%d, error=%v", coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coaches/{id}/available-slots - Slots retrieved: coach_id=%d, slots_count=%d", coachID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
