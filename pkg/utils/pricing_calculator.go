package utils

import (
	"fmt"
	"time"
)

// RentalQuoteResult contains the calculated rental amount and breakdown
type RentalQuoteResult struct {
	TotalAmount int             `json:"totalAmount"`
	TotalHours  int             `json:"totalHours"`
	Duration    string          `json:"duration"`
	Breakdown   RentalBreakdown `json:"breakdown"`
}

// RentalBreakdown provides detailed amount breakdown
type RentalBreakdown struct {
	BaseAmount       int `json:"baseAmount"`
	AdditionalHours  int `json:"additionalHours"`
	AdditionalAmount int `json:"additionalAmount"`
	HelmetAmount     int `json:"helmetAmount"`
	Total            int `json:"total"`
}

const (
	// Rates in INR
	BaseAmount24h      = 500 // Flat amount covering the first 24 hours
	OverageRatePerHour = 22  // Per started hour beyond 24
	ExtraHelmetCharge  = 50  // Flat add-on, independent of duration
	BaseWindowHours    = 24
)

// RentalHours returns the billed duration in hours: elapsed time rounded up
// to the next full hour. A one minute overage opens a new hour bucket.
func RentalHours(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	hours := int(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// CalculateRentalQuote computes the total amount for a rental window.
// Flat amount for the first 24 hours, linear per-hour rate beyond that,
// fixed charge for an extra helmet.
func CalculateRentalQuote(start, end time.Time, extraHelmet bool) RentalQuoteResult {
	hours := RentalHours(start, end)

	base := BaseAmount24h
	additionalHours := 0
	additionalAmount := 0
	if hours > BaseWindowHours {
		additionalHours = hours - BaseWindowHours
		additionalAmount = additionalHours * OverageRatePerHour
	}

	helmetAmount := 0
	if extraHelmet {
		helmetAmount = ExtraHelmetCharge
	}

	total := base + additionalAmount + helmetAmount

	return RentalQuoteResult{
		TotalAmount: total,
		TotalHours:  hours,
		Duration:    FormatRentalDuration(hours),
		Breakdown: RentalBreakdown{
			BaseAmount:       base,
			AdditionalHours:  additionalHours,
			AdditionalAmount: additionalAmount,
			HelmetAmount:     helmetAmount,
			Total:            total,
		},
	}
}

// FormatRentalDuration renders a billed hour count as a human label
func FormatRentalDuration(hours int) string {
	days := (hours + 23) / 24
	if days > 1 {
		return fmt.Sprintf("%d days", days)
	}
	if hours > 1 {
		return fmt.Sprintf("%d hours", hours)
	}
	return "1 hour"
}
