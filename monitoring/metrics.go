package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paymentOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_operations_total",
			Help: "Total payment operations by outcome",
		},
		[]string{"operation", "status"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paypal_gateway_request_duration_seconds",
			Help:    "Duration of outbound PayPal requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	bookingsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Bookings confirmed through payment capture",
		},
	)
)

// TrackPaymentOperation counts one create/execute/query outcome.
func TrackPaymentOperation(operation, status string) {
	paymentOperations.WithLabelValues(operation, status).Inc()
}

// ObserveGatewayRequest records the latency of one outbound processor call.
func ObserveGatewayRequest(operation string, err error, started time.Time) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	gatewayRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// TrackBookingConfirmed counts one booking flipped to confirmed.
func TrackBookingConfirmed() {
	bookingsConfirmed.Inc()
}
