package add_date_override

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
	msgVersionConflict = "расписание было изменено параллельно, повторите запрос"
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

// Handle POST /api/v1/coaches/{coachId}/schedule/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /coaches/{id}/schedule/overrides - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	var req models.AddOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /coaches/{id}/schedule/overrides - Invalid body: coach_id=%d, error=%v", coachID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.CoachID = coachID

	schedule, err := h.service.AddOverride(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("POST /coaches/{id}/schedule/overrides - Invalid input: coach_id=%d, error=%v", coachID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availabilityService.ErrVersionConflict):
			h.logger.Warn("POST /coaches/{id}/schedule/overrides - Version conflict: coach_id=%d", coachID)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("POST /coaches/{id}/schedule/overrides - Failed to add override: coach_id=%d, error=%v", coachID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coaches/{id}/schedule/overrides - Override added: coach_id=%d, date=%s, version=%d",
		coachID, req.Date, schedule.Version)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
