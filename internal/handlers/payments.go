package handlers

import (
	"fmt"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/metrics"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentOrder creates a gateway order for a pending booking. The
// checkout widget is opened client-side with the returned order id; the
// amount comes from the booking row, never from the client.
func CreatePaymentOrder(db *gorm.DB, rz *services.RazorpayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			BookingID uint `json:"bookingId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}
		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}
		if booking.PaymentStatus == models.PaymentStatusCompleted {
			c.JSON(409, gin.H{"error": "Booking is already paid"})
			return
		}

		receipt := uuid.NewString()
		orderID, err := rz.CreateOrder(booking.TotalAmount, receipt, map[string]interface{}{
			"booking_id": fmt.Sprintf("%d", booking.ID),
		})
		if err != nil {
			c.JSON(502, gin.H{"error": "Failed to create payment order"})
			return
		}

		booking.OrderID = orderID
		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to record payment order"})
			return
		}

		c.JSON(201, gin.H{
			"orderId":  orderID,
			"amount":   booking.TotalAmount * 100, // paise, what the widget expects
			"currency": "INR",
			"receipt":  receipt,
		})
	}
}

type VerifyPaymentInput struct {
	BookingID         uint   `json:"bookingId" binding:"required"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
	TestMode          bool   `json:"testMode"`
}

// VerifyPayment confirms a checkout callback. The signature is verified
// server-side before any booking mutation; a client-asserted success is only
// accepted when test mode is explicitly enabled in the environment.
func VerifyPayment(db *gorm.DB, rz *services.RazorpayService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input VerifyPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, input.BookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}
		if booking.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}
		if booking.PaymentStatus == models.PaymentStatusCompleted {
			c.JSON(409, gin.H{"error": "Booking is already paid"})
			return
		}

		method := "razorpay"
		paymentID := input.RazorpayPaymentID

		if input.TestMode {
			if !rz.TestMode() {
				c.JSON(403, gin.H{"error": "Test mode is not enabled"})
				return
			}
			method = "test"
			paymentID = fmt.Sprintf("test_payment_%d", time.Now().UnixNano())
		} else {
			if input.RazorpayOrderID == "" || paymentID == "" || input.RazorpaySignature == "" {
				c.JSON(400, gin.H{"error": "Missing payment verification fields"})
				return
			}
			if booking.OrderID != "" && booking.OrderID != input.RazorpayOrderID {
				c.JSON(400, gin.H{"error": "Order does not belong to this booking"})
				return
			}
			if !rz.VerifyCheckoutSignature(input.RazorpayOrderID, paymentID, input.RazorpaySignature) {
				metrics.IncPayment(string(models.PaymentActivityFailed))
				c.JSON(400, gin.H{"error": "Payment signature verification failed"})
				return
			}
		}

		now := time.Now()
		booking.Status = models.BookingStatusConfirmed
		booking.PaymentStatus = models.PaymentStatusCompleted
		booking.PaymentID = paymentID
		booking.PaymentMethod = method
		booking.PaidAt = &now
		if input.RazorpayOrderID != "" {
			booking.OrderID = input.RazorpayOrderID
		}

		payment := models.Payment{
			BookingID:        booking.ID,
			UserID:           userId,
			GatewayPaymentID: paymentID,
			GatewayOrderID:   booking.OrderID,
			Amount:           booking.TotalAmount,
			Currency:         "INR",
			Method:           method,
			Status:           models.PaymentActivityCaptured,
			Event:            "checkout.verified",
		}

		// Booking state and the payment record move together or not at all.
		// The webhook may also report this capture, so the row is keyed by
		// gateway payment id and written once.
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			if recorded, err := PaymentRecorded(tx, paymentID, models.PaymentActivityCaptured); err != nil {
				return err
			} else if recorded {
				return nil
			}
			return tx.Create(&payment).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Payment verified but could not be recorded, please contact support"})
			return
		}

		metrics.IncPayment(string(models.PaymentActivityCaptured))
		notifyBookingChange(hub, &booking)

		c.JSON(200, booking)
	}
}

// PaymentRecorded reports whether a payment row with this gateway id and
// status already exists. The checkout callback and the gateway webhook both
// report the same capture; whichever arrives second must not add a second
// row, or revenue totals double.
func PaymentRecorded(db *gorm.DB, gatewayPaymentID string, status models.PaymentActivityStatus) (bool, error) {
	var count int64
	err := db.Model(&models.Payment{}).
		Where("gateway_payment_id = ? AND status = ?", gatewayPaymentID, status).
		Count(&count).Error
	return count > 0, err
}

// GetPayments retrieves the authenticated user's payment history
func GetPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var payments []models.Payment
		if err := db.Where("user_id = ?", userId).
			Order("created_at DESC").
			Find(&payments).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payments"})
			return
		}

		c.JSON(200, payments)
	}
}
