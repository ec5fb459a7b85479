package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bikerental",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted and persisted.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bikerental",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts rejected by the overlap check.",
		},
	)

	availabilityChecks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bikerental",
			Name:      "availability_checks_total",
			Help:      "Availability snapshot evaluations.",
		},
	)

	availabilityFailOpen = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bikerental",
			Name:      "availability_fail_open_total",
			Help:      "Availability reads that failed and assumed available.",
		},
	)

	payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bikerental",
			Name:      "payments_total",
			Help:      "Gateway payment events by status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingsCreated,
			bookingConflicts,
			availabilityChecks,
			availabilityFailOpen,
			payments,
		)
	})
}

func IncBookingCreated()       { bookingsCreated.Inc() }
func IncBookingConflict()      { bookingConflicts.Inc() }
func IncAvailabilityCheck()    { availabilityChecks.Inc() }
func IncAvailabilityFailOpen() { availabilityFailOpen.Inc() }

// IncPayment increments the payment counter for a gateway status label.
func IncPayment(status string) { payments.WithLabelValues(status).Inc() }
