package utils

import (
	"errors"
	"time"
)

const (
	// Daily operating window, local time. Pickups and returns outside the
	// shop's hours are rejected, never silently corrected.
	OpeningHour = 7  // 07:00 inclusive
	ClosingHour = 19 // 19:00 exclusive
)

var (
	ErrStartInPast      = errors.New("start time cannot be in the past")
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrOutsideHours     = errors.New("pickup and return must be between 07:00 and 19:00")
	ErrStartTooFarAhead = errors.New("bookings can be made at most one month in advance")
	ErrEndTooFarAhead   = errors.New("rental period cannot exceed one month")
)

// WithinOperatingHours reports whether the local hour-of-day of t falls
// inside the shop's daily window.
func WithinOperatingHours(t time.Time) bool {
	h := t.Hour()
	return h >= OpeningHour && h < ClosingHour
}

// ValidateBookingWindow decides acceptability of a candidate rental window.
// Every violation is a blocking, user-facing message; the first one found is
// returned.
func ValidateBookingWindow(start, end, now time.Time) error {
	if !WithinOperatingHours(start) || !WithinOperatingHours(end) {
		return ErrOutsideHours
	}
	if start.Before(now) {
		return ErrStartInPast
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	if start.After(now.AddDate(0, 1, 0)) {
		return ErrStartTooFarAhead
	}
	if end.After(start.AddDate(0, 1, 0)) {
		return ErrEndTooFarAhead
	}
	return nil
}
