package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithinOperatingHours(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, WithinOperatingHours(day.Add(5*time.Hour)))
	assert.False(t, WithinOperatingHours(day.Add(6*time.Hour+59*time.Minute)))
	assert.True(t, WithinOperatingHours(day.Add(7*time.Hour)))
	assert.True(t, WithinOperatingHours(day.Add(12*time.Hour)))
	assert.True(t, WithinOperatingHours(day.Add(18*time.Hour+59*time.Minute)))
	assert.False(t, WithinOperatingHours(day.Add(19*time.Hour)))
	assert.False(t, WithinOperatingHours(day.Add(22*time.Hour)))
}

func TestValidateBookingWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	valid := func(startOffset, endOffset time.Duration) (time.Time, time.Time) {
		return now.Add(startOffset), now.Add(endOffset)
	}

	t.Run("accepts a normal window", func(t *testing.T) {
		start, end := valid(2*time.Hour, 6*time.Hour)
		assert.NoError(t, ValidateBookingWindow(start, end, now))
	})

	t.Run("rejects pickup before opening", func(t *testing.T) {
		start := time.Date(2026, 3, 11, 5, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrOutsideHours)
	})

	t.Run("rejects return after closing", func(t *testing.T) {
		start := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrOutsideHours)
	})

	t.Run("rejects start in the past", func(t *testing.T) {
		start, end := valid(-time.Hour, 6*time.Hour)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrStartInPast)
	})

	t.Run("rejects end not after start", func(t *testing.T) {
		start, end := valid(6*time.Hour, 2*time.Hour)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrEndBeforeStart)

		start = now.Add(2 * time.Hour)
		assert.ErrorIs(t, ValidateBookingWindow(start, start, now), ErrEndBeforeStart)
	})

	t.Run("rejects start beyond one month", func(t *testing.T) {
		start := now.AddDate(0, 1, 1)
		end := start.Add(4 * time.Hour)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrStartTooFarAhead)
	})

	t.Run("rejects rental longer than one month", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		end := start.AddDate(0, 1, 1)
		assert.ErrorIs(t, ValidateBookingWindow(start, end, now), ErrEndTooFarAhead)
	})

	t.Run("accepts window exactly at the horizon", func(t *testing.T) {
		start := now.AddDate(0, 1, 0)
		end := start.Add(4 * time.Hour)
		assert.NoError(t, ValidateBookingWindow(start, end, now))
	})
}
