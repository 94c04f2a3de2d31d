package remove_date_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
	availabilityService "github.com/m04kA/CMP-AvailabilityService/internal/service/availability"
)

const (
	msgInvalidCoachID   = "некорректный ID коуча"
	msgOverrideNotFound = "исключение на эту дату не найдено"
	msgVersionConflict  = "расписание было изменено параллельно, повторите запрос"
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

// Handle DELETE /api/v1/coaches/{coachId}/schedule/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /coaches/{id}/schedule/overrides/{date} - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	date := vars["date"]

	if err := h.service.RemoveOverride(r.Context(), coachID, date); err != nil {
		switch {
		case errors.Is(err, availabilityService.ErrInvalidInput):
			h.logger.Warn("DELETE /coaches/{id}/schedule/overrides/{date} - Invalid input: coach_id=%d, date=%s", coachID, date)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availabilityService.ErrOverrideNotFound):
			h.logger.Warn("DELETE /coaches/{id}/schedule/overrides/{date} - Not found: coach_id=%d, date=%s", coachID, date)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, availabilityService.ErrVersionConflict):
			h.logger.Warn("DELETE /coaches/{id}/schedule/overrides/{date} - Version conflict: coach_id=%d", coachID)
			handlers.RespondConflict(w, msgVersionConflict)

		default:
			h.logger.Error("DELETE /coaches/{id}/schedule/overrides/{date} - Failed: coach_id=%d, date=%s, error=%v", coachID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /coaches/{id}/schedule/overrides/{date} - Override removed: coach_id=%d, date=%s", coachID, date)
	w.WriteHeader(http.StatusNoContent)
}
