package handlers

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/coastalrides/bikerental-backend/internal/metrics"
	"github.com/coastalrides/bikerental-backend/internal/models"
	"github.com/coastalrides/bikerental-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// razorpayWebhookPayload mirrors the gateway's webhook envelope. Only the
// fields the handlers read are declared.
type razorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity razorpayEntity `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity razorpayEntity `json:"entity"`
		} `json:"order"`
		Refund *struct {
			Entity razorpayEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type razorpayEntity struct {
	ID        string            `json:"id"`
	Amount    int               `json:"amount"` // paise
	Currency  string            `json:"currency"`
	Status    string            `json:"status"`
	Method    string            `json:"method"`
	OrderID   string            `json:"order_id"`
	PaymentID string            `json:"payment_id"`
	Notes     map[string]string `json:"notes"`
}

// RazorpayWebhook receives signed gateway events and mutates booking and
// payment state. The signature check against the raw body happens before
// anything is parsed; unsigned or tampered requests are rejected.
func RazorpayWebhook(db *gorm.DB, rz *services.RazorpayService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(400, gin.H{"error": "Failed to read request body"})
			return
		}

		signature := c.GetHeader("X-Razorpay-Signature")
		if !rz.VerifyWebhookSignature(body, signature) {
			log.Warn().Str("event", "unknown").Msg("webhook signature verification failed")
			c.JSON(401, gin.H{"error": "Invalid webhook signature"})
			return
		}

		var payload razorpayWebhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(400, gin.H{"error": "Invalid webhook payload"})
			return
		}

		log.Info().Str("event", payload.Event).Msg("razorpay webhook received")

		switch payload.Event {
		case "payment.captured":
			if payload.Payload.Payment != nil {
				handlePaymentEvent(db, hub, payload.Event, payload.Payload.Payment.Entity, models.PaymentActivityCaptured)
			}
		case "payment.authorized":
			if payload.Payload.Payment != nil {
				handlePaymentEvent(db, hub, payload.Event, payload.Payload.Payment.Entity, models.PaymentActivityAuthorized)
			}
		case "payment.failed":
			if payload.Payload.Payment != nil {
				handlePaymentEvent(db, hub, payload.Event, payload.Payload.Payment.Entity, models.PaymentActivityFailed)
			}
		case "order.paid":
			if payload.Payload.Order != nil {
				handlePaymentEvent(db, hub, payload.Event, payload.Payload.Order.Entity, models.PaymentActivityCaptured)
			}
		case "refund.processed":
			if payload.Payload.Refund != nil {
				handleRefundEvent(db, hub, payload.Event, payload.Payload.Refund.Entity)
			}
		default:
			log.Info().Str("event", payload.Event).Msg("unhandled webhook event")
		}

		// Always acknowledge so the gateway does not retry events we chose
		// to ignore.
		c.JSON(200, gin.H{"received": true})
	}
}

// bookingFromEntity resolves the booking a gateway entity refers to, via the
// booking_id note or the stored order id.
func bookingFromEntity(db *gorm.DB, entity razorpayEntity) (*models.Booking, error) {
	if idStr, ok := entity.Notes["booking_id"]; ok {
		if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
			var booking models.Booking
			if err := db.First(&booking, uint(id)).Error; err == nil {
				return &booking, nil
			}
		}
	}

	orderID := entity.OrderID
	if orderID == "" {
		orderID = entity.ID
	}
	var booking models.Booking
	if err := db.Where("order_id = ?", orderID).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func handlePaymentEvent(db *gorm.DB, hub *services.Hub, event string, entity razorpayEntity, status models.PaymentActivityStatus) {
	// Deliveries are at-least-once, and a capture already recorded by the
	// checkout callback must not be recorded again.
	if recorded, err := PaymentRecorded(db, entity.ID, status); err == nil && recorded {
		log.Info().Str("event", event).Str("entityId", entity.ID).Msg("payment event already recorded, skipping")
		return
	}

	metrics.IncPayment(string(status))

	booking, err := bookingFromEntity(db, entity)
	if err != nil {
		log.Warn().Str("event", event).Str("entityId", entity.ID).Msg("webhook entity does not match any booking")
		return
	}

	payment := models.Payment{
		BookingID:        booking.ID,
		UserID:           booking.UserID,
		GatewayPaymentID: entity.ID,
		GatewayOrderID:   entity.OrderID,
		Amount:           entity.Amount / 100, // paise to rupees
		Currency:         entity.Currency,
		Method:           entity.Method,
		Status:           status,
		Event:            event,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to record payment event")
		return
	}

	switch status {
	case models.PaymentActivityCaptured:
		now := time.Now()
		booking.Status = models.BookingStatusConfirmed
		booking.PaymentStatus = models.PaymentStatusCompleted
		booking.PaymentID = entity.ID
		if entity.Method != "" {
			booking.PaymentMethod = entity.Method
		}
		booking.PaidAt = &now
	case models.PaymentActivityFailed:
		booking.PaymentStatus = models.PaymentStatusFailed
	case models.PaymentActivityAuthorized:
		// No booking transition until capture
		return
	}

	if err := db.Save(booking).Error; err != nil {
		log.Error().Err(err).Uint("bookingId", booking.ID).Msg("failed to update booking from webhook")
		return
	}

	notifyBookingChange(hub, booking)
}

func handleRefundEvent(db *gorm.DB, hub *services.Hub, event string, entity razorpayEntity) {
	if recorded, err := PaymentRecorded(db, entity.PaymentID, models.PaymentActivityRefunded); err == nil && recorded {
		log.Info().Str("event", event).Str("paymentId", entity.PaymentID).Msg("refund already recorded, skipping")
		return
	}

	metrics.IncPayment(string(models.PaymentActivityRefunded))

	var booking models.Booking
	if err := db.Where("payment_id = ?", entity.PaymentID).First(&booking).Error; err != nil {
		log.Warn().Str("event", event).Str("paymentId", entity.PaymentID).Msg("refund does not match any booking")
		return
	}

	payment := models.Payment{
		BookingID:        booking.ID,
		UserID:           booking.UserID,
		GatewayPaymentID: entity.PaymentID,
		Amount:           entity.Amount / 100,
		Currency:         entity.Currency,
		Status:           models.PaymentActivityRefunded,
		Event:            event,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to record refund event")
		return
	}

	booking.PaymentStatus = models.PaymentStatusRefunded
	if err := db.Save(&booking).Error; err != nil {
		log.Error().Err(err).Uint("bookingId", booking.ID).Msg("failed to update booking from refund")
		return
	}

	notifyBookingChange(hub, &booking)
}
