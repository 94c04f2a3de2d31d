package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CMP-AvailabilityService/internal/api/handlers"
)

const (
	msgInvalidCoachID = "некорректный ID коуча"
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

// Handle GET /api/v1/coaches/{coachId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	coachIDStr := vars["coachId"]
	coachID, err := strconv.ParseInt(coachIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /coaches/{id}/schedule - Invalid coach ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCoachID)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), coachID)
	if err != nil {
		h.logger.Error("GET /coaches/{id}/schedule - Failed to get schedule: coach_id=%d, error=%v", coachID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /coaches/{id}/schedule - Schedule retrieved: coach_id=%d, version=%d", coachID, schedule.Version)
	handlers.RespondJSON(w, http.StatusOK, schedule)
}
