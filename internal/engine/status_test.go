package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

func TestComputeStatus_CurrentlyAvailable(t *testing.T) {
	profile := testProfile("Europe/Moscow")
	loc := mustLocation(t, "Europe/Moscow")

	// Понедельник 10:30 - внутри слота 10:00-11:00, броней нет
	now := time.Date(2025, 10, 20, 10, 30, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, nil, now)
	require.NoError(t, err)

	assert.True(t, status.IsCurrentlyAvailable)
	assert.Nil(t, status.CurrentSessionEnd)

	// Слот 11:00 режется last-minute порогом (now + 1 час = 11:30),
	// ближайший бронируемый - 12:00
	require.NotNil(t, status.NextAvailableSlot)
	assert.True(t, status.NextAvailableSlot.Equal(time.Date(2025, 10, 20, 12, 0, 0, 0, loc)))
}

func TestComputeStatus_InsideBusySession(t *testing.T) {
	profile := testProfile("Europe/Moscow")
	profile.Buffers = domain.BufferSettings{AfterSessionMinutes: 15}
	loc := mustLocation(t, "Europe/Moscow")

	sessionEnd := time.Date(2025, 10, 20, 11, 0, 0, 0, loc)
	busy := []domain.BusyInterval{
		{
			Start:  time.Date(2025, 10, 20, 10, 0, 0, 0, loc),
			End:    sessionEnd,
			Status: domain.SessionConfirmed,
		},
	}

	now := time.Date(2025, 10, 20, 10, 30, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, busy, now)
	require.NoError(t, err)

	assert.False(t, status.IsCurrentlyAvailable)
	// CurrentSessionEnd - сырой конец сессии, без учёта буфера
	require.NotNil(t, status.CurrentSessionEnd)
	assert.True(t, status.CurrentSessionEnd.Equal(sessionEnd))
}

func TestComputeStatus_InsideBufferZoneAfterSession(t *testing.T) {
	profile := testProfile("Europe/Moscow")
	profile.Buffers = domain.BufferSettings{AfterSessionMinutes: 30}
	loc := mustLocation(t, "Europe/Moscow")

	sessionEnd := time.Date(2025, 10, 20, 11, 0, 0, 0, loc)
	busy := []domain.BusyInterval{
		{
			Start:  time.Date(2025, 10, 20, 10, 0, 0, 0, loc),
			End:    sessionEnd,
			Status: domain.SessionConfirmed,
		},
	}

	// Сессия кончилась, но буфер после неё ещё действует
	now := time.Date(2025, 10, 20, 11, 15, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, busy, now)
	require.NoError(t, err)

	assert.False(t, status.IsCurrentlyAvailable)
	require.NotNil(t, status.CurrentSessionEnd)
	assert.True(t, status.CurrentSessionEnd.Equal(sessionEnd))
}

func TestComputeStatus_OutsideWorkingHours(t *testing.T) {
	profile := testProfile("Europe/Moscow")
	loc := mustLocation(t, "Europe/Moscow")

	// Понедельник 20:00 - рабочий день закончился
	now := time.Date(2025, 10, 20, 20, 0, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, nil, now)
	require.NoError(t, err)

	assert.False(t, status.IsCurrentlyAvailable)
	assert.Nil(t, status.CurrentSessionEnd)

	// Следующий слот - завтра с учётом last-minute порога
	require.NotNil(t, status.NextAvailableSlot)
	assert.True(t, status.NextAvailableSlot.Equal(time.Date(2025, 10, 21, 9, 0, 0, 0, loc)))
}

func TestComputeStatus_NoSlotsInHorizon(t *testing.T) {
	profile := testProfile("Europe/Moscow")
	profile.Recurring = nil
	loc := mustLocation(t, "Europe/Moscow")

	now := time.Date(2025, 10, 20, 10, 0, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, nil, now)
	require.NoError(t, err)

	// Пустой горизонт - это успех, а не ошибка
	assert.False(t, status.IsCurrentlyAvailable)
	assert.Nil(t, status.NextAvailableSlot)
}

func TestComputeStatus_NextSlotSkipsBlockedDay(t *testing.T) {
	profile := mondayProfile("Europe/Moscow")
	loc := mustLocation(t, "Europe/Moscow")

	// Ближайший понедельник заблокирован отпуском - следующий слот через неделю
	profile.Overrides = []domain.DateOverride{
		{
			Date:        time.Date(2025, 10, 20, 0, 0, 0, 0, loc),
			IsAvailable: false,
			Reason:      domain.ReasonVacation,
		},
	}

	now := time.Date(2025, 10, 19, 12, 0, 0, 0, loc)

	status, err := ComputeStatus(context.Background(), profile, nil, now)
	require.NoError(t, err)

	require.NotNil(t, status.NextAvailableSlot)
	assert.True(t, status.NextAvailableSlot.Equal(time.Date(2025, 10, 27, 9, 0, 0, 0, loc)))
}
