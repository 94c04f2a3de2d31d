package get_live_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
	getLiveStatus "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_live_status"
)

const (
	msgInvalidCoachID      = "некорректный ID коуча"
	msgSessionsUnavailable = "сервис сессий временно недоступен, попробуйте позже"
)

// LiveStatusResponse HTTP response model
type LiveStatusResponse struct {
	CoachID              int64   `json:"coachId"`
	IsCurrentlyAvailable bool    `json:"isCurrentlyAvailable"`
	CurrentSessionEnd    *string `json:"currentSessionEnd"`
	NextAvailableSlot    *string `json:"nextAvailableSlot"`
}

type Handler struct {
	useCase GetLiveStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetLiveStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coaches/{coachId}/availability/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/availability/status - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getLiveStatus.Request{CoachID: coachID})
	if err != nil {
		switch {
		case errors.Is(err, getLiveStatus.ErrInvalidInput):
			h.logger.Warn("GET /coaches/{id}/availability/status - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, msgInvalidCoachID)

		case errors.Is(err, getLiveStatus.ErrSessionsUnavailable):
			h.logger.Error("GET /coaches/{id}/availability/status - Sessions unavailable: coach_id=%d, error=%v", coachID, err)
			handlers.RespondServiceUnavailable(w, msgSessionsUnavailable)

		default:
			h.logger.Error("GET /coaches/{id}/availability/status - Failed to get status: coach_id=%d, error=%v", coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := LiveStatusResponse{
		CoachID:              result.CoachID,
		IsCurrentlyAvailable: result.IsCurrentlyAvailable,
		CurrentSessionEnd:    formatTime(result.CurrentSessionEnd),
		NextAvailableSlot:    formatTime(result.NextAvailableSlot),
	}

	h.logger.Info("GET /coaches/{id}/availability/status - Status retrieved: coach_id=%d, available=%t", coachID, result.IsCurrentlyAvailable)
	handlers.RespondJSON(w, http.StatusOK, response)
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
