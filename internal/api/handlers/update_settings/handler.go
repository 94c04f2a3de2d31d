package update_settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
	availabilityService "github.com/m04kA/CMP-AvailabilityService/internal/service/availability"
	"github.com/m04kA/CMP-AvailabilityService/internal/service/availability/models"
)

const (
	msgInvalidCoachID  = "некорректный ID коуча"
	msgInvalidBody     = "некорректное тело запроса"
	msgVersionConflict = "настройки были изменены параллельно, повторите запрос"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/coaches/{coachId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /coaches/{id}/settings - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /coaches/{id}/settings - Invalid body: coach_id=%d, error=%v", coachID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.CoachID = coachID

	schedule, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("PUT /coaches/{id}/settings - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availabilityService.ErrVersionConflict):
			h.logger.Warn("PUT /coaches/{id}/settings - Version conflict: coach_id=%d", coachID)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("PUT /coaches/{id}/settings - Failed to update settings: coach_id=%d, error=%v", coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /coaches/{id}/settings - Settings updated: coach_id=%d, version=%d", coachID, schedule.Version)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
