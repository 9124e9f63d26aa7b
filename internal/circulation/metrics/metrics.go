package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the circulation module: borrow/return
// volumes, rejections, and assessed late fees.
type Metrics struct {
	Borrows         prometheus.Counter
	BorrowsRejected prometheus.Counter
	Returns         prometheus.Counter
	LateReturns     prometheus.Counter
	LateFeeAssessed prometheus.Histogram
	BorrowDuration  prometheus.Histogram
}

// New registers and returns all circulation metrics.
func New() *Metrics {
	return &Metrics{
		Borrows: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_borrows_total",
			Help: "Total number of successful borrows",
		}),
		BorrowsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_borrows_rejected_total",
			Help: "Total number of borrow attempts rejected by validation",
		}),
		Returns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_returns_total",
			Help: "Total number of successful returns",
		}),
		LateReturns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_late_returns_total",
			Help: "Total number of returns made past the due date",
		}),
		LateFeeAssessed: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblio_late_fee_assessed_dollars",
			Help:    "Late fees assessed at return time",
			Buckets: []float64{0.5, 1, 2.5, 5, 7.5, 10, 12.5, 15},
		}),
		BorrowDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblio_borrow_op_duration_seconds",
			Help:    "Duration of borrow operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveBorrow records the duration of a borrow operation.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveBorrow(start time.Time) {
	m.BorrowDuration.Observe(time.Since(start).Seconds())
}
