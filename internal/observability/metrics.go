package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworking_booking_decisions_total",
			Help: "Availability decisions by outcome",
		},
		[]string{"outcome"},
	)

	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coworking_bookings_created_total",
			Help: "Bookings confirmed on the external calendar",
		},
	)

	UpstreamFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworking_upstream_failures_total",
			Help: "Failed calls to external collaborators",
		},
		[]string{"target"},
	)

	PaymentInitiations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworking_payment_initiations_total",
			Help: "Payment order initiations by outcome",
		},
		[]string{"outcome"},
	)

	PaymentReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coworking_payment_reconciliations_total",
			Help: "Payment reconciliation verdicts",
		},
		[]string{"verdict"},
	)
)
