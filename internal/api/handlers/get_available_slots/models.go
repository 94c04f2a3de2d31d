package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/CMP-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CoachID         int64           `json:"coachId"`
	Timezone        string          `json:"timezone"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота в HTTP ответе
// Времена отдаются в UTC в формате RFC3339
type AvailableSlot struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	IsAvailable    bool   `json:"isAvailable"`
	ConflictReason string `json:"conflictReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:      slot.StartTime.UTC().Format(time.RFC3339),
			EndTime:        slot.EndTime.UTC().Format(time.RFC3339),
			IsAvailable:    slot.IsAvailable,
			ConflictReason: slot.ConflictReason,
		}
	}

	return &AvailableSlotsResponse{
		CoachID:         resp.CoachID,
		Timezone:        resp.Timezone,
		From:            resp.From.UTC().Format(time.RFC3339),
		To:              resp.To.UTC().Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
