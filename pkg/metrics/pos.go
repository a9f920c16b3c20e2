package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the order creation handler, cart to committed order
	OrderCreateLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_order_create_latency_seconds",
		Help:    "Latency of order creation including stock decrement",
		Buckets: prometheus.DefBuckets,
	})

	OrdersCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_orders_created_total",
		Help: "Orders committed, labelled by payment method",
	}, []string{"payment_method"})

	OrdersRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_rejected_total",
		Help: "Orders rejected for insufficient stock",
	})

	ShiftsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_shifts_started_total",
		Help: "Shifts opened by cashiers",
	})
)

func Init() {
	prometheus.MustRegister(
		OrderCreateLatency,
		OrdersCreated,
		OrdersRejected,
		ShiftsStarted,
	)
}
