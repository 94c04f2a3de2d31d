package get_live_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
	sessionClient "github.com/m04kA/CMP-AvailabilityService/internal/integrations/sessionservice"
	"github.com/m04kA/CMP-AvailabilityService/pkg/types"
)

type fakeAvailability struct {
	profile *domain.CoachAvailability
	err     error
}

func (f *fakeAvailability) GetOrCreateProfile(_ context.Context, _ int64) (*domain.CoachAvailability, error) {
	return f.profile, f.err
}

type fakeSessions struct {
	busy []domain.BusyInterval
	err  error

	from, to time.Time
}

// ListBusyIntervals отдаёт только интервалы, пересекающие запрошенный диапазон -
// как настоящий SessionService
func (f *fakeSessions) ListBusyIntervals(_ context.Context, _ int64, from, to time.Time, _ []domain.SessionStatus) ([]domain.BusyInterval, error) {
	f.from = from
	f.to = to
	if f.err != nil {
		return nil, f.err
	}

	var overlapping []domain.BusyInterval
	for _, interval := range f.busy {
		if interval.Start.Before(to) && interval.End.After(from) {
			overlapping = append(overlapping, interval)
		}
	}
	return overlapping, nil
}

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

func utcProfile() *domain.CoachAvailability {
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
		Timezone:               "UTC",
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

func TestExecute_AvailableNow(t *testing.T) {
	// Понедельник 2025-10-20, 10:30 UTC, рабочий час без сессий
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{profile: utcProfile()}, &fakeSessions{}, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 42})
	require.NoError(t, err)

	assert.True(t, resp.IsCurrentlyAvailable)
	assert.Nil(t, resp.CurrentSessionEnd)
	require.NotNil(t, resp.NextAvailableSlot)
}

func TestExecute_InsideSession(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	sessionEnd := time.Date(2025, 10, 20, 11, 0, 0, 0, time.UTC)

	sessions := &fakeSessions{
		busy: []domain.BusyInterval{
			{
				Start:  time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC),
				End:    sessionEnd,
				Status: domain.SessionConfirmed,
			},
		},
	}
	uc := newTestUseCase(&fakeAvailability{profile: utcProfile()}, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 42})
	require.NoError(t, err)

	assert.False(t, resp.IsCurrentlyAvailable)
	require.NotNil(t, resp.CurrentSessionEnd)
	assert.True(t, resp.CurrentSessionEnd.Equal(sessionEnd))
}

func TestExecute_HorizonCoversAdvanceBookingDays(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	sessions := &fakeSessions{}
	uc := newTestUseCase(&fakeAvailability{profile: utcProfile()}, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 42})
	require.NoError(t, err)

	assert.True(t, sessions.from.Equal(now.Add(-time.Duration(domain.MaxBufferMinutes)*time.Minute)))
	assert.True(t, sessions.to.Equal(now.AddDate(0, 0, 30)))
}

func TestExecute_BufferAfterRecentlyEndedSession(t *testing.T) {
	// Сессия закончилась до now, но её after-buffer ещё накрывает now:
	// интервал должен попасть в выборку и дать unavailable
	now := time.Date(2025, 10, 20, 11, 15, 0, 0, time.UTC)
	sessionEnd := time.Date(2025, 10, 20, 11, 0, 0, 0, time.UTC)

	profile := utcProfile()
	profile.Buffers.AfterSessionMinutes = 30

	sessions := &fakeSessions{busy: []domain.BusyInterval{
		{Start: time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC), End: sessionEnd},
	}}
	uc := newTestUseCase(&fakeAvailability{profile: profile}, sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{CoachID: 42})
	require.NoError(t, err)

	assert.False(t, resp.IsCurrentlyAvailable)
	require.NotNil(t, resp.CurrentSessionEnd)
	assert.True(t, resp.CurrentSessionEnd.Equal(sessionEnd))
}

func TestExecute_SessionServiceUnavailable(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	sessions := &fakeSessions{err: sessionClient.ErrServiceUnavailable}
	uc := newTestUseCase(&fakeAvailability{profile: utcProfile()}, sessions, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 42})
	assert.ErrorIs(t, err, ErrSessionsUnavailable)
}

func TestExecute_InvalidCoachID(t *testing.T) {
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeAvailability{profile: utcProfile()}, &fakeSessions{}, now)

	_, err := uc.Execute(context.Background(), &Request{CoachID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
