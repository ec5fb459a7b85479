package models

import (
	"gorm.io/gorm"
)

type PaymentActivityStatus string

const (
	PaymentActivityCreated    PaymentActivityStatus = "created"
	PaymentActivityAuthorized PaymentActivityStatus = "authorized"
	PaymentActivityCaptured   PaymentActivityStatus = "captured"
	PaymentActivityFailed     PaymentActivityStatus = "failed"
	PaymentActivityRefunded   PaymentActivityStatus = "refunded"
	PaymentActivityCancelled  PaymentActivityStatus = "cancelled"
)

// Payment is one gateway-side event recorded against a booking. The webhook
// and the checkout verification endpoint both append rows here, so the admin
// dashboard reflects the full gateway history rather than just the latest
// booking state.
type Payment struct {
	gorm.Model
	BookingID        uint                  `json:"bookingId" gorm:"index"`
	Booking          Booking               `json:"-"`
	UserID           uint                  `json:"userId" gorm:"index"`
	GatewayPaymentID string                `json:"gatewayPaymentId" gorm:"index"`
	GatewayOrderID   string                `json:"gatewayOrderId"`
	Amount           int                   `json:"amount"`
	Currency         string                `json:"currency" gorm:"default:'INR'"`
	Method           string                `json:"method"`
	Status           PaymentActivityStatus `json:"status" gorm:"not null;index"`
	Event            string                `json:"event"`
}
