package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestRentalHours(t *testing.T) {
	start := at(9)

	assert.Equal(t, 0, RentalHours(start, start))
	assert.Equal(t, 0, RentalHours(start, start.Add(-time.Hour)))
	assert.Equal(t, 1, RentalHours(start, start.Add(time.Hour)))
	assert.Equal(t, 1, RentalHours(start, start.Add(30*time.Minute)))
	// one minute over the hour opens a new billed hour
	assert.Equal(t, 2, RentalHours(start, start.Add(time.Hour+time.Minute)))
	assert.Equal(t, 24, RentalHours(start, start.Add(24*time.Hour)))
}

func TestCalculateRentalQuoteBaseWindow(t *testing.T) {
	start := at(9)

	// Any duration up to 24 hours bills the flat base amount
	for _, hours := range []int{1, 6, 12, 24} {
		quote := CalculateRentalQuote(start, start.Add(time.Duration(hours)*time.Hour), false)
		assert.Equal(t, 500, quote.TotalAmount, "hours=%d", hours)
		assert.Equal(t, 500, quote.Breakdown.BaseAmount)
		assert.Equal(t, 0, quote.Breakdown.AdditionalAmount)
	}
}

func TestCalculateRentalQuoteOverage(t *testing.T) {
	start := at(9)

	// 30 hours = 500 base + 6 overage hours at 22
	quote := CalculateRentalQuote(start, start.Add(30*time.Hour), false)
	assert.Equal(t, 632, quote.TotalAmount)
	assert.Equal(t, 30, quote.TotalHours)
	assert.Equal(t, 6, quote.Breakdown.AdditionalHours)
	assert.Equal(t, 132, quote.Breakdown.AdditionalAmount)

	// 25th hour starts at one minute past the base window
	quote = CalculateRentalQuote(start, start.Add(24*time.Hour+time.Minute), false)
	assert.Equal(t, 522, quote.TotalAmount)
	assert.Equal(t, 1, quote.Breakdown.AdditionalHours)
}

func TestCalculateRentalQuoteExtraHelmet(t *testing.T) {
	start := at(9)

	short := CalculateRentalQuote(start, start.Add(4*time.Hour), true)
	assert.Equal(t, 550, short.TotalAmount)
	assert.Equal(t, 50, short.Breakdown.HelmetAmount)

	// Helmet charge is flat regardless of duration
	long := CalculateRentalQuote(start, start.Add(30*time.Hour), true)
	assert.Equal(t, 682, long.TotalAmount)
	assert.Equal(t, 50, long.Breakdown.HelmetAmount)
}

func TestFormatRentalDuration(t *testing.T) {
	assert.Equal(t, "1 hour", FormatRentalDuration(1))
	assert.Equal(t, "5 hours", FormatRentalDuration(5))
	assert.Equal(t, "24 hours", FormatRentalDuration(24))
	assert.Equal(t, "2 days", FormatRentalDuration(25))
	assert.Equal(t, "3 days", FormatRentalDuration(49))
}
