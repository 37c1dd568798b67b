package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics counts checkout outcomes. A nil *CheckoutMetrics is a no-op.
type CheckoutMetrics struct {
	Checkouts *prometheus.CounterVec
	Charged   prometheus.Counter
	Shipments prometheus.Counter
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "checkout",
		Name:      "total",
		Help:      "Checkouts by outcome.",
	}, []string{"outcome"})
	charged := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "checkout",
		Name:      "charged_amount_total",
		Help:      "Sum of amounts debited from customers.",
	})
	shipments := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pos",
		Subsystem: "checkout",
		Name:      "shipments_total",
		Help:      "Shipment notices emitted.",
	})

	reg.MustRegister(checkouts, charged, shipments)
	return &CheckoutMetrics{Checkouts: checkouts, Charged: charged, Shipments: shipments}
}

// Rejected records a checkout that failed validation; reason is a short label.
func (m *CheckoutMetrics) Rejected(reason string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(reason).Inc()
}

func (m *CheckoutMetrics) Completed(total decimal.Decimal, shipped bool) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues("ok").Inc()
	m.Charged.Add(total.InexactFloat64())
	if shipped {
		m.Shipments.Inc()
	}
}

// Handler exposes the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor exposes the given gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
