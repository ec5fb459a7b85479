package handlers

import (
	"time"

	"github.com/coastalrides/bikerental-backend/internal/metrics"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/coastalrides/bikerental-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redsync/redsync/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CreateBookingInput struct {
	BikeID              uint      `json:"bikeId" binding:"required"`
	StartDate           time.Time `json:"startDate" binding:"required"`
	EndDate             time.Time `json:"endDate" binding:"required"`
	PickupLocation      string    `json:"pickupLocation" binding:"required"`
	DropLocation        string    `json:"dropLocation"`
	SpecialInstructions string    `json:"specialInstructions"`
	ExtraHelmet         bool      `json:"extraHelmet"`
	VerificationToken   string    `json:"verificationToken" binding:"required"`
}

// CreateBooking creates a booking. The amount is always computed
// server-side from the canonical pricing rule; the window is validated; the
// verification token minted by the wizard is consumed; and the overlap check
// plus insert run under a per-bike lock so two clients cannot both book the
// same window.
func CreateBooking(db *gorm.DB, locker *redsync.Redsync, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := utils.ValidateBookingWindow(input.StartDate, input.EndDate, time.Now()); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Validate only; the token is burned after the insert succeeds so a
		// rejected booking does not cost the user their verification pass.
		ctx := c.Request.Context()
		if err := services.ValidateVerificationToken(ctx, input.VerificationToken, userId); err != nil {
			c.JSON(403, gin.H{"error": "Verification required before booking"})
			return
		}

		var bike models.Bike
		if err := db.First(&bike, input.BikeID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Bike not found"})
			return
		}
		if bike.Status != models.BikeStatusAvailable {
			c.JSON(409, gin.H{"error": "Bike is not available for booking"})
			return
		}

		quote := utils.CalculateRentalQuote(input.StartDate, input.EndDate, input.ExtraHelmet)

		// Serialization point: the overlap re-check and the insert happen
		// inside the per-bike critical section.
		mutex := services.BookingMutex(locker, input.BikeID)
		if err := mutex.Lock(); err != nil {
			c.JSON(503, gin.H{"error": "Could not reserve the bike, please retry"})
			return
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Warn().Err(err).Uint("bikeId", input.BikeID).Msg("failed to release booking lock")
			}
		}()

		conflict, err := HasOverlap(db, input.BikeID, input.StartDate, input.EndDate, 0)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to check availability"})
			return
		}
		if conflict {
			metrics.IncBookingConflict()
			c.JSON(409, gin.H{"error": "Bike is already booked for the selected period"})
			return
		}

		booking := models.Booking{
			UserID:              userId,
			BikeID:              input.BikeID,
			StartDate:           input.StartDate,
			EndDate:             input.EndDate,
			TotalHours:          quote.TotalHours,
			TotalAmount:         quote.TotalAmount,
			PickupLocation:      input.PickupLocation,
			DropLocation:        input.DropLocation,
			SpecialInstructions: input.SpecialInstructions,
			ExtraHelmet:         input.ExtraHelmet,
			Status:              models.BookingStatusPending,
			PaymentStatus:       models.PaymentStatusPending,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		if err := services.ConsumeVerificationToken(ctx, input.VerificationToken, userId); err != nil {
			log.Warn().Err(err).Uint("userId", userId).Msg("failed to burn verification token after booking create")
		}

		metrics.IncBookingCreated()
		notifyBookingChange(hub, &booking)

		c.JSON(201, booking)
	}
}

// GetBookings retrieves all bookings for the authenticated user
func GetBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var bookings []models.Booking
		if err := db.Where("user_id = ?", userId).
			Preload("Bike").
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetBooking retrieves one booking, owner-scoped
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Bike").First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		c.JSON(200, booking)
	}
}

type UpdateBookingInput struct {
	StartDate           time.Time `json:"startDate" binding:"required"`
	EndDate             time.Time `json:"endDate" binding:"required"`
	PickupLocation      string    `json:"pickupLocation" binding:"required"`
	DropLocation        string    `json:"dropLocation"`
	SpecialInstructions string    `json:"specialInstructions"`
}

// UpdateBooking modifies the rental window or locations of a booking. The
// new window is revalidated and repriced, and the overlap re-check (which
// excludes the booking itself) runs under the same per-bike lock as create.
func UpdateBooking(db *gorm.DB, locker *redsync.Redsync, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}
		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}
		if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
			c.JSON(409, gin.H{"error": "Booking can no longer be modified"})
			return
		}

		var input UpdateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := utils.ValidateBookingWindow(input.StartDate, input.EndDate, time.Now()); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		quote := utils.CalculateRentalQuote(input.StartDate, input.EndDate, booking.ExtraHelmet)

		mutex := services.BookingMutex(locker, booking.BikeID)
		if err := mutex.Lock(); err != nil {
			c.JSON(503, gin.H{"error": "Could not reserve the bike, please retry"})
			return
		}
		defer func() {
			if _, err := mutex.Unlock(); err != nil {
				log.Warn().Err(err).Uint("bikeId", booking.BikeID).Msg("failed to release booking lock")
			}
		}()

		conflict, err := HasOverlap(db, booking.BikeID, input.StartDate, input.EndDate, booking.ID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to check availability"})
			return
		}
		if conflict {
			metrics.IncBookingConflict()
			c.JSON(409, gin.H{"error": "Bike is already booked for the selected period"})
			return
		}

		booking.StartDate = input.StartDate
		booking.EndDate = input.EndDate
		booking.TotalHours = quote.TotalHours
		booking.TotalAmount = quote.TotalAmount
		booking.PickupLocation = input.PickupLocation
		booking.DropLocation = input.DropLocation
		booking.SpecialInstructions = input.SpecialInstructions

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		notifyBookingChange(hub, &booking)

		c.JSON(200, booking)
	}
}

// CancelBooking cancels a booking by status transition; the row is kept for
// the payment trail.
func CancelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.First(&booking, c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}
		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}
		if booking.Status == models.BookingStatusCancelled {
			c.JSON(409, gin.H{"error": "Booking is already cancelled"})
			return
		}

		booking.Status = models.BookingStatusCancelled
		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		notifyBookingChange(hub, &booking)

		c.JSON(200, booking)
	}
}

func notifyBookingChange(hub *services.Hub, booking *models.Booking) {
	if hub == nil {
		return
	}
	hub.SendBookingUpdate(services.BookingUpdate{
		BookingID:     booking.ID,
		BikeID:        booking.BikeID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
	})
}
