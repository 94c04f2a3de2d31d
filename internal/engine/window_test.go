package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CMP-AvailabilityService/internal/domain"
)

func TestValidateWindow_TooSoonAndTooFarRetainedWithReason(t *testing.T) {
	loc := mustLocation(t, "Europe/Moscow")
	now := time.Date(2025, 10, 20, 8, 30, 0, 0, loc)

	candidates := []domain.AvailableSlot{
		// Начинается через 30 минут - раньше last-minute порога в 1 час
		{Start: now.Add(30 * time.Minute), End: now.Add(90 * time.Minute), IsAvailable: true},
		// Начинается через 2 часа - внутри окна
		{Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour), IsAvailable: true},
		// Начинается за горизонтом advanceBookingDays
		{Start: now.AddDate(0, 0, 31), End: now.AddDate(0, 0, 31).Add(time.Hour), IsAvailable: true},
	}

	result := ValidateWindow(candidates, now, 1, 30)

	require.Len(t, result, 3)

	assert.False(t, result[0].IsAvailable)
	assert.Equal(t, domain.ConflictOutsideWindow, result[0].ConflictReason)

	assert.True(t, result[1].IsAvailable)

	assert.False(t, result[2].IsAvailable)
	assert.Equal(t, domain.ConflictOutsideWindow, result[2].ConflictReason)
}

func TestValidateWindow_BoundariesInclusive(t *testing.T) {
	loc := mustLocation(t, "Europe/Moscow")
	now := time.Date(2025, 10, 20, 8, 0, 0, 0, loc)

	candidates := []domain.AvailableSlot{
		// Ровно now + lastMinuteBookingHours - бронируем
		{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), IsAvailable: true},
		// Ровно now + advanceBookingDays - бронируем
		{Start: now.AddDate(0, 0, 30), End: now.AddDate(0, 0, 30).Add(time.Hour), IsAvailable: true},
	}

	result := ValidateWindow(candidates, now, 1, 30)

	assert.True(t, result[0].IsAvailable)
	assert.True(t, result[1].IsAvailable)
}

func TestValidateWindow_DoesNotOverwriteBookedReason(t *testing.T) {
	loc := mustLocation(t, "Europe/Moscow")
	now := time.Date(2025, 10, 20, 8, 0, 0, 0, loc)

	candidates := []domain.AvailableSlot{
		{
			Start:          now.Add(10 * time.Minute),
			End:            now.Add(70 * time.Minute),
			IsAvailable:    false,
			ConflictReason: domain.ConflictBooked,
		},
	}

	result := ValidateWindow(candidates, now, 1, 30)

	assert.Equal(t, domain.ConflictBooked, result[0].ConflictReason)
}

func TestAvailableSlots_FullPipelineJerusalemScenario(t *testing.T) {
	// Сквозной сценарий: Asia/Jerusalem, Пн 09:00-12:00, 60 минут,
	// без override и броней, advance=30, lastMinute=1
	profile := mondayProfile("Asia/Jerusalem")
	loc := mustLocation(t, "Asia/Jerusalem")

	// Среда 15 октября, следующий понедельник - 20 октября (IDT, UTC+3)
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, loc)
	monday := time.Date(2025, 10, 20, 0, 0, 0, 0, loc)

	slots, err := AvailableSlots(
		context.Background(),
		profile, nil,
		monday, monday.AddDate(0, 0, 1),
		60, now, false,
	)
	require.NoError(t, err)

	require.Len(t, slots, 3)

	expected := []time.Time{
		time.Date(2025, 10, 20, 6, 0, 0, 0, time.UTC), // 09:00 IDT
		time.Date(2025, 10, 20, 7, 0, 0, 0, time.UTC), // 10:00 IDT
		time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC), // 11:00 IDT
	}

	for i, slot := range slots {
		assert.True(t, slot.IsAvailable, "slot %d must be bookable", i)
		assert.True(t, slot.Start.Equal(expected[i]), "slot %d start: want %s, got %s", i, expected[i], slot.Start.UTC())
		assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))
	}
}

func TestAvailableSlots_BookingWindowInvariant(t *testing.T) {
	// Ни один бронируемый слот не нарушает границы окна бронирования
	profile := testProfile("Europe/Moscow")
	loc := mustLocation(t, "Europe/Moscow")

	now := time.Date(2025, 10, 20, 10, 30, 0, 0, loc)
	rangeStart := time.Date(2025, 10, 20, 0, 0, 0, 0, loc)
	rangeEnd := rangeStart.AddDate(0, 0, 35)

	slots, err := AvailableSlots(context.Background(), profile, nil, rangeStart, rangeEnd, 60, now, false)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	earliest := now.Add(time.Duration(profile.LastMinuteBookingHours) * time.Hour)
	latest := now.AddDate(0, 0, profile.AdvanceBookingDays)

	sawOutsideWindow := false
	for _, slot := range slots {
		if slot.IsAvailable {
			assert.False(t, slot.Start.Before(earliest))
			assert.False(t, slot.Start.After(latest))
		} else if slot.ConflictReason == domain.ConflictOutsideWindow {
			sawOutsideWindow = true
		}
	}

	// Диапазон шире горизонта, так что слоты за горизонтом должны быть помечены
	assert.True(t, sawOutsideWindow)
}
