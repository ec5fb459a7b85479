package handlers

import (
	"strconv"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/metrics"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AvailabilitySnapshot is the derived, non-persisted availability value.
type AvailabilitySnapshot struct {
	Available       bool       `json:"available"`
	NextAvailableAt *time.Time `json:"nextAvailableAt,omitempty"`
}

// occupyingBookings scopes a query to booking rows that block a bike's
// calendar.
func occupyingBookings(db *gorm.DB, bikeID uint) *gorm.DB {
	return db.Model(&models.Booking{}).
		Where("bike_id = ?", bikeID).
		Where("status IN ?", models.OccupyingStatuses)
}

// HasOverlap reports whether any occupying booking of the bike intersects
// the candidate [start, end) window. excludeID skips a booking being
// modified so it does not conflict with itself.
func HasOverlap(db *gorm.DB, bikeID uint, start, end time.Time, excludeID uint) (bool, error) {
	query := occupyingBookings(db, bikeID).
		Where("start_date < ? AND end_date > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EvaluateAvailability computes the "is available now" snapshot. Only
// bookings whose window actually covers now make the bike unavailable; a
// booking starting next week does not block the bike today.
// nextAvailableAt is the earliest end among the covering bookings.
func EvaluateAvailability(db *gorm.DB, bikeID uint, now time.Time) (AvailabilitySnapshot, error) {
	metrics.IncAvailabilityCheck()

	var bookings []models.Booking
	err := occupyingBookings(db, bikeID).
		Where("start_date <= ? AND end_date > ?", now, now).
		Order("end_date ASC").
		Limit(1).
		Find(&bookings).Error
	if err != nil {
		return AvailabilitySnapshot{Available: true}, err
	}

	if len(bookings) == 0 {
		return AvailabilitySnapshot{Available: true}, nil
	}

	next := bookings[0].EndDate
	return AvailabilitySnapshot{Available: false, NextAvailableAt: &next}, nil
}

// GetBikeAvailability returns the availability snapshot for one bike.
// With start/end query params it instead answers whether the candidate
// window is free, using a true interval-overlap check.
// Read failures are fail-open: assume available, log a warning. A transient
// backend error should degrade sales, not block them.
func GetBikeAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bikeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid bike id"})
			return
		}

		// Candidate window check
		if startStr, endStr := c.Query("start"), c.Query("end"); startStr != "" && endStr != "" {
			start, err1 := time.Parse(time.RFC3339, startStr)
			end, err2 := time.Parse(time.RFC3339, endStr)
			if err1 != nil || err2 != nil || !end.After(start) {
				c.JSON(400, gin.H{"error": "Invalid candidate window"})
				return
			}

			conflict, err := HasOverlap(db, uint(bikeID), start, end, 0)
			if err != nil {
				metrics.IncAvailabilityFailOpen()
				log.Warn().Err(err).Uint64("bikeId", bikeID).Msg("availability check failed, assuming available")
				c.JSON(200, AvailabilitySnapshot{Available: true})
				return
			}

			c.JSON(200, AvailabilitySnapshot{Available: !conflict})
			return
		}

		// Snapshot, served from the short-lived cache when possible
		ctx := c.Request.Context()
		if services.RedisClient != nil {
			var cached AvailabilitySnapshot
			if hit, err := services.GetCachedAvailabilitySnapshot(ctx, uint(bikeID), &cached); err == nil && hit {
				c.JSON(200, cached)
				return
			}
		}

		snapshot, err := EvaluateAvailability(db, uint(bikeID), time.Now())
		if err != nil {
			metrics.IncAvailabilityFailOpen()
			log.Warn().Err(err).Uint64("bikeId", bikeID).Msg("availability check failed, assuming available")
			c.JSON(200, snapshot)
			return
		}

		if services.RedisClient != nil {
			if err := services.CacheAvailabilitySnapshot(ctx, uint(bikeID), snapshot); err != nil {
				log.Warn().Err(err).Msg("failed to cache availability snapshot")
			}
		}

		c.JSON(200, snapshot)
	}
}

// GetAllBikesAvailability aggregates the snapshot for every bike in one
// query, keyed by bike id. Bikes absent from the map are available.
func GetAllBikesAvailability(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()

		var bookings []models.Booking
		err := db.Model(&models.Booking{}).
			Where("status IN ?", models.OccupyingStatuses).
			Where("start_date <= ? AND end_date > ?", now, now).
			Order("bike_id ASC, end_date ASC").
			Find(&bookings).Error
		if err != nil {
			metrics.IncAvailabilityFailOpen()
			log.Warn().Err(err).Msg("fleet availability check failed, assuming all available")
			c.JSON(200, gin.H{"availability": map[string]AvailabilitySnapshot{}})
			return
		}

		availability := make(map[uint]AvailabilitySnapshot)
		for i := range bookings {
			b := bookings[i]
			if existing, ok := availability[b.BikeID]; ok {
				if existing.NextAvailableAt != nil && !b.EndDate.Before(*existing.NextAvailableAt) {
					continue
				}
			}
			next := b.EndDate
			availability[b.BikeID] = AvailabilitySnapshot{Available: false, NextAvailableAt: &next}
		}

		c.JSON(200, gin.H{"availability": availability})
	}
}
