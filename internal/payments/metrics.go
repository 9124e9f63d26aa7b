package payments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the payment layer.
type Metrics struct {
	PaymentsProcessed prometheus.Counter
	PaymentsDeclined  prometheus.Counter
	RefundsProcessed  prometheus.Counter
	PaymentAmount     prometheus.Histogram
}

// NewMetrics registers and returns all payment metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		PaymentsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_payments_processed_total",
			Help: "Total number of approved late-fee payments",
		}),
		PaymentsDeclined: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_payments_declined_total",
			Help: "Total number of late-fee payments declined by the gateway",
		}),
		RefundsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_refunds_processed_total",
			Help: "Total number of approved late-fee refunds",
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblio_payment_amount_dollars",
			Help:    "Approved late-fee payment amounts",
			Buckets: []float64{0.5, 1, 2.5, 5, 7.5, 10, 12.5, 15},
		}),
	}
}
