package handlers

import (
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboardStats aggregates the numbers the back-office landing page
// shows: fleet and booking counts by status plus captured revenue.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalBikes, availableBikes int64
		if err := db.Model(&models.Bike{}).Count(&totalBikes).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch dashboard stats"})
			return
		}
		db.Model(&models.Bike{}).Where("status = ?", models.BikeStatusAvailable).Count(&availableBikes)

		bookingCounts := map[string]int64{}
		for _, status := range []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusActive,
			models.BookingStatusCompleted,
			models.BookingStatusCancelled,
		} {
			var n int64
			db.Model(&models.Booking{}).Where("status = ?", status).Count(&n)
			bookingCounts[string(status)] = n
		}

		var totalBookings int64
		db.Model(&models.Booking{}).Count(&totalBookings)

		var revenue int64
		db.Model(&models.Payment{}).
			Where("status = ?", models.PaymentActivityCaptured).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&revenue)

		c.JSON(200, gin.H{
			"bikes": gin.H{
				"total":     totalBikes,
				"available": availableBikes,
			},
			"bookings": gin.H{
				"total":    totalBookings,
				"byStatus": bookingCounts,
			},
			"revenue": revenue,
		})
	}
}

// GetPaymentActivity lists gateway payment events for the back-office, newest
// first, with optional status filter and substring search on the gateway ids.
func GetPaymentActivity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Payment{})

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if q := c.Query("q"); q != "" {
			pattern := "%" + q + "%"
			query = query.Where(
				"gateway_payment_id LIKE ? OR gateway_order_id LIKE ?",
				pattern, pattern,
			)
		}

		var payments []models.Payment
		if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payment activity"})
			return
		}

		c.JSON(200, payments)
	}
}

// GetAllBookings lists every booking across users for the back-office. The
// renter's contact details are included here; customer-facing booking
// responses keep them hidden.
func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Bike").Preload("User")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.Booking
		if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		out := make([]gin.H, 0, len(bookings))
		for i := range bookings {
			b := bookings[i]
			out = append(out, gin.H{
				"booking": b,
				"user": gin.H{
					"id":          b.User.ID,
					"username":    b.User.Username,
					"email":       b.User.Email,
					"phoneNumber": b.User.PhoneNumber,
				},
			})
		}

		c.JSON(200, out)
	}
}
