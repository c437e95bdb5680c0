package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	ModerationDecisions   *prometheus.CounterVec
	OrdersCreated         prometheus.Counter
	CommissionTotal       prometheus.Counter
	OrderTransitions      *prometheus.CounterVec
	ExhibitionsCreated    prometheus.Counter
	ExhibitionTransitions *prometheus.CounterVec
	CheckoutsStarted      *prometheus.CounterVec
	Reconciliations       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ModerationDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Admin approval decisions by entity and outcome",
		}, []string{"entity", "outcome"}),
		OrdersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created",
		}),
		CommissionTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "orders_commission_minor_units_total",
			Help: "Platform commission booked at order creation, in minor units",
		}),
		OrderTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Order status transitions",
		}, []string{"from", "to"}),
		ExhibitionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "exhibitions_created_total",
			Help: "Exhibitions submitted",
		}),
		ExhibitionTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "exhibition_transitions_total",
			Help: "Exhibition schedule transitions",
		}, []string{"to"}),
		CheckoutsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_checkouts_started_total",
			Help: "Checkout sessions opened by order type",
		}, []string{"order_type"}),
		Reconciliations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_reconciliations_total",
			Help: "Reconciliation outcomes by order type",
		}, []string{"order_type", "outcome"}),
	}
}

func (m *Metrics) Moderation(entity, outcome string) {
	if m == nil {
		return
	}
	m.ModerationDecisions.WithLabelValues(entity, outcome).Inc()
}

func (m *Metrics) OrderCreated(commission int64) {
	if m == nil {
		return
	}
	m.OrdersCreated.Inc()
	m.CommissionTotal.Add(float64(commission))
}

func (m *Metrics) OrderTransition(from, to string) {
	if m == nil {
		return
	}
	m.OrderTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ExhibitionCreated() {
	if m == nil {
		return
	}
	m.ExhibitionsCreated.Inc()
}

func (m *Metrics) ExhibitionTransition(to string) {
	if m == nil {
		return
	}
	m.ExhibitionTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) CheckoutStarted(orderType string) {
	if m == nil {
		return
	}
	m.CheckoutsStarted.WithLabelValues(orderType).Inc()
}

func (m *Metrics) Reconciled(orderType, outcome string) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(orderType, outcome).Inc()
}
