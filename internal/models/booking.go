package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// OccupyingStatuses are the booking states that block a bike's calendar.
// Cancelled and completed bookings release the window.
var OccupyingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusActive,
}

type Booking struct {
	gorm.Model
	UserID              uint          `json:"userId" gorm:"not null;index"`
	User                User          `json:"-"`
	BikeID              uint          `json:"bikeId" gorm:"not null;index"`
	Bike                Bike          `json:"bike"`
	StartDate           time.Time     `json:"startDate" gorm:"not null"`
	EndDate             time.Time     `json:"endDate" gorm:"not null"`
	TotalHours          int           `json:"totalHours"`
	TotalAmount         int           `json:"totalAmount"`
	PickupLocation      string        `json:"pickupLocation" gorm:"not null"`
	DropLocation        string        `json:"dropLocation"`
	SpecialInstructions string        `json:"specialInstructions"`
	ExtraHelmet         bool          `json:"extraHelmet"`
	Status              BookingStatus `json:"status" gorm:"not null;default:'pending';index"`
	PaymentStatus       PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	PaymentID           string        `json:"paymentId"`
	OrderID             string        `json:"orderId"`
	PaymentMethod       string        `json:"paymentMethod"`
	PaidAt              *time.Time    `json:"paidAt"`
}

// Overlaps reports whether the booking window intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && b.EndDate.After(start)
}
