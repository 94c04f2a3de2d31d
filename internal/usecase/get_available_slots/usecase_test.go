package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	sessionClient "github.com/m04kA/CMP-AvailabilityService/internal/integrations/sessionservice"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

// fakeAvailability возвращает фиксированный профиль
type fakeAvailability struct {
	profile *domain.CoachAvailability
	err     error
}

func (f *fakeAvailability) GetOrCreateProfile(_ context.Context, _ int64) (*domain.CoachAvailability, error) {
	return f.profile, f.err
}

// fakeSessions запоминает параметры последнего вызова
type fakeSessions struct {
	busy     []domain.BusyInterval
	err      error
	statuses []domain.SessionStatus
}

func (f *fakeSessions) ListBusyIntervals(_ context.Context, _ int64, _, _ time.Time, statuses []domain.SessionStatus) ([]domain.BusyInterval, error) {
	f.statuses = statuses
	return f.busy, f.err
}

// fixedTime детерминированный провайдер времени
type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func moscowProfile() *domain.CoachAvailability {
	recurring := make([]domain.RecurringAvailability, 0, 5)
	for day := 1; day <= 5; day++ {
		recurring = append(recurring, domain.RecurringAvailability{
			DayOfWeek: day,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("17:00"),
			IsActive:  true,
		})
	}
	return &domain.CoachAvailability{
		CoachID:                42,
		Timezone:               "Europe/Moscow",
		Recurring:              recurring,
		DefaultSessionDuration: 60,
		AllowedDurations:       []int{30, 60, 90},
		AdvanceBookingDays:     30,
		LastMinuteBookingHours: 1,
		ApprovalMode:           domain.ApprovalAuto,
		Version:                1,
	}
}

func newTestUseCase(availability *fakeAvailability, sessions *fakeSessions, now time.Time) *UseCase {
	uc := NewUseCase(availability, sessions, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_GeneratesSlotsForWorkday(t *testing.T) {
	// Понедельник 2025-10-20; запрашиваем вторник целиком
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	from := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)

	sessions := &fakeSessions{}
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    from,
		To:      to,
	})
	require.NoError(t, err)

	assert.Equal(t, "Europe/Moscow", resp.Timezone)
	// Длительность не передана - используется дефолтная
	assert.Equal(t, 60, resp.DurationMinutes)
	// 09:00-17:00 по Москве = 8 часовых слотов
	assert.Len(t, resp.Slots, 8)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
		assert.Empty(t, slot.ConflictReason)
	}
	// Москва UTC+3: первый слот 09:00 MSK = 06:00 UTC
	assert.Equal(t, time.Date(2025, 10, 21, 6, 0, 0, 0, time.UTC), resp.Slots[0].StartTime.UTC())
}

func TestExecute_BookedSlotMarked(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	from := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)

	sessions := &fakeSessions{
		busy: []domain.BusyInterval{
			{
				// 10:00-11:00 MSK
				Start:  time.Date(2025, 10, 21, 7, 0, 0, 0, time.UTC),
				End:    time.Date(2025, 10, 21, 8, 0, 0, 0, time.UTC),
				Status: domain.SessionConfirmed,
			},
		},
	}
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 42, From: from, To: to})
	require.NoError(t, err)

	booked := 0
	for _, slot := range resp.Slots {
		if slot.ConflictReason == string(domain.ConflictBooked) {
			booked++
			assert.False(t, slot.IsAvailable)
		}
	}
	assert.Equal(t, 1, booked)
}

func TestExecute_AutoApprovalIgnoresPending(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessions{}
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BlockingStatuses, sessions.statuses)
}

func TestExecute_ManualApprovalIncludesPending(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	profile := moscowProfile()
	profile.ApprovalMode = domain.ApprovalManual

	sessions := &fakeSessions{}
	uc := newTestUseCase(&fakeAvailability{profile: profile}, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BlockingStatusesWithPending, sessions.statuses)
}

func TestExecute_DurationNotAllowed(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, &fakeSessions{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		CoachID:         42,
		From:            time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		To:              time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, ErrDurationNotAllowed)
}

func TestExecute_RangeTooLarge(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, &fakeSessions{}, now)

	from := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    from,
		To:      from.AddDate(0, 0, domain.MaxRangeDays+1),
	})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
}

func TestExecute_InvalidRange(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, &fakeSessions{}, now)

	from := time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    from,
		To:      from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SessionServiceUnavailable(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessions{err: sessionClient.ErrServiceUnavailable}
	uc := newTestUseCase(&fakeAvailability{profile: moscowProfile()}, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrSessionsUnavailable)
}

func TestExecute_ProfileError(t *testing.T) {
	now := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{err: errors.New("db is down")}, &fakeSessions{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		CoachID: 42,
		From:    time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInternal)
}
