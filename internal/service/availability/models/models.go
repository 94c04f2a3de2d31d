package models

import (
	"time"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// Request модели

// RecurringSlotInput еженедельное окно доступности в запросе
type RecurringSlotInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	IsActive  *bool  `json:"isActive,omitempty"`
}

// ReplaceRecurringRequest запрос на полную замену еженедельного расписания
// ExpectedVersion - опциональная ожидаемая версия профиля: при расхождении
// с текущей запись отклоняется с конфликтом версий
type ReplaceRecurringRequest struct {
	CoachID         int64
	Slots           []RecurringSlotInput `json:"slots"`
	ExpectedVersion *int64               `json:"expectedVersion,omitempty"`
}

// OverrideTimeSlotInput окно доступности внутри override
type OverrideTimeSlotInput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AddOverrideRequest запрос на добавление исключения на дату
type AddOverrideRequest struct {
	CoachID     int64
	Date        string                  `json:"date"` // "YYYY-MM-DD"
	IsAvailable bool                    `json:"isAvailable"`
	Reason      string                  `json:"reason,omitempty"`
	TimeSlots   []OverrideTimeSlotInput `json:"timeSlots,omitempty"`
}

// UpdateSettingsRequest запрос на обновление настроек профиля
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	CoachID                int64
	Timezone               *string `json:"timezone,omitempty"`
	BufferBeforeMinutes    *int    `json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes     *int    `json:"bufferAfterMinutes,omitempty"`
	BufferBetweenMinutes   *int    `json:"bufferBetweenMinutes,omitempty"`
	DefaultSessionDuration *int    `json:"defaultSessionDuration,omitempty"`
	AllowedDurations       []int   `json:"allowedDurations,omitempty"`
	AdvanceBookingDays     *int    `json:"advanceBookingDays,omitempty"`
	LastMinuteBookingHours *int    `json:"lastMinuteBookingHours,omitempty"`
	ApprovalMode           *string `json:"approvalMode,omitempty"`
	ExpectedVersion        *int64  `json:"expectedVersion,omitempty"`
}

// Response модели

// RecurringSlotResponse еженедельное окно в ответе
type RecurringSlotResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// OverrideTimeSlotResponse окно внутри override в ответе
type OverrideTimeSlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// OverrideResponse исключение на дату в ответе
type OverrideResponse struct {
	Date        string                     `json:"date"`
	IsAvailable bool                       `json:"isAvailable"`
	Reason      string                     `json:"reason,omitempty"`
	TimeSlots   []OverrideTimeSlotResponse `json:"timeSlots,omitempty"`
}

// BufferSettingsResponse настройки буферов в ответе
type BufferSettingsResponse struct {
	BeforeSessionMinutes   int `json:"beforeSessionMinutes"`
	AfterSessionMinutes    int `json:"afterSessionMinutes"`
	BetweenSessionsMinutes int `json:"betweenSessionsMinutes"`
}

// ScheduleResponse полный профиль доступности коуча
type ScheduleResponse struct {
	CoachID                int64                   `json:"coachId"`
	Timezone               string                  `json:"timezone"`
	Recurring              []RecurringSlotResponse `json:"recurring"`
	Overrides              []OverrideResponse      `json:"overrides"`
	Buffers                BufferSettingsResponse  `json:"buffers"`
	DefaultSessionDuration int                     `json:"defaultSessionDuration"`
	AllowedDurations       []int                   `json:"allowedDurations"`
	AdvanceBookingDays     int                     `json:"advanceBookingDays"`
	LastMinuteBookingHours int                     `json:"lastMinuteBookingHours"`
	ApprovalMode           string                  `json:"approvalMode"`
	Version                int64                   `json:"version"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

// FromDomainProfile конвертирует доменный профиль в ответ сервиса
func FromDomainProfile(profile *domain.CoachAvailability) *ScheduleResponse {
	recurring := make([]RecurringSlotResponse, len(profile.Recurring))
	for i, entry := range profile.Recurring {
		recurring[i] = RecurringSlotResponse{
			DayOfWeek: entry.DayOfWeek,
			StartTime: entry.StartTime.String(),
			EndTime:   entry.EndTime.String(),
			IsActive:  entry.IsActive,
		}
	}

	overrides := make([]OverrideResponse, len(profile.Overrides))
	for i, override := range profile.Overrides {
		slots := make([]OverrideTimeSlotResponse, len(override.TimeSlots))
		for j, slot := range override.TimeSlots {
			slots[j] = OverrideTimeSlotResponse{
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
			}
		}
		overrides[i] = OverrideResponse{
			Date:        override.Date.Format(domain.DateFormat),
			IsAvailable: override.IsAvailable,
			Reason:      string(override.Reason),
			TimeSlots:   slots,
		}
	}

	return &ScheduleResponse{
		CoachID:   profile.CoachID,
		Timezone:  profile.Timezone,
		Recurring: recurring,
		Overrides: overrides,
		Buffers: BufferSettingsResponse{
			BeforeSessionMinutes:   profile.Buffers.BeforeSessionMinutes,
			AfterSessionMinutes:    profile.Buffers.AfterSessionMinutes,
			BetweenSessionsMinutes: profile.Buffers.BetweenSessionsMinutes,
		},
		DefaultSessionDuration: profile.DefaultSessionDuration,
		AllowedDurations:       profile.AllowedDurations,
		AdvanceBookingDays:     profile.AdvanceBookingDays,
		LastMinuteBookingHours: profile.LastMinuteBookingHours,
		ApprovalMode:           string(profile.ApprovalMode),
		Version:                profile.Version,
		UpdatedAt:              profile.UpdatedAt,
	}
}

// ToDomainRecurring конвертирует входные еженедельные окна в доменные
// Валидация формата выполняется сервисом до вызова
func ToDomainRecurring(slots []RecurringSlotInput) []domain.RecurringAvailability {
	entries := make([]domain.RecurringAvailability, len(slots))
	for i, slot := range slots {
		isActive := true
		if slot.IsActive != nil {
			isActive = *slot.IsActive
		}
		entries[i] = domain.RecurringAvailability{
			DayOfWeek: slot.DayOfWeek,
			StartTime: types.TimeString(slot.StartTime),
			EndTime:   types.TimeString(slot.EndTime),
			IsActive:  isActive,
		}
	}
	return entries
}
