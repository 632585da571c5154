// Package metrics provides Prometheus metrics collection for the pharmacy API.
// It exports request-level metrics (totals, latency, in-flight gauge) plus
// domain counters for orders and prescriptions.
//
// All metrics are automatically registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	OrdersPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmacy_orders_placed_total",
			Help: "Orders placed by customers",
		},
	)

	OrdersFulfilled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmacy_orders_fulfilled_total",
			Help: "Orders fulfilled by pharmacists",
		},
	)

	OrdersRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmacy_orders_rejected_total",
			Help: "Orders rejected by pharmacists",
		},
	)

	PrescriptionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pharmacy_prescriptions_created_total",
			Help: "Prescriptions written by practitioners",
		},
	)

	LowStockMedications = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pharmacy_low_stock_medications",
			Help: "Medications at or below the low-stock threshold",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(OrdersPlaced)
	prometheus.MustRegister(OrdersFulfilled)
	prometheus.MustRegister(OrdersRejected)
	prometheus.MustRegister(PrescriptionsCreated)
	prometheus.MustRegister(LowStockMedications)
}
