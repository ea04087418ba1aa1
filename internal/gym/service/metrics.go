package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports service counters to Prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	checkins      *prometheus.CounterVec
	payments      prometheus.Counter
	qrIssued      *prometheus.CounterVec
	qrConsumed    *prometheus.CounterVec
	qrPeeked      *prometheus.CounterVec
	reminders     *prometheus.CounterVec
	sweepDuration prometheus.Histogram
	lapsed        prometheus.Counter
}

const metricsNamespace = "gym"

// NewMetrics registers the service collectors on reg. Collectors that are
// already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		checkins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "checkins_total",
			Help:      "Check-in attempts by method and outcome.",
		}, []string{"method", "result"}),
		payments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "payments_total",
			Help:      "Completed payments registered.",
		}),
		qrIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "qr_issued_total",
			Help:      "Temporal QR tokens issued.",
		}, []string{"kind"}),
		qrConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "qr_consumed_total",
			Help:      "Temporal QR consumption attempts by outcome.",
		}, []string{"result"}),
		qrPeeked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "qr_lookups_total",
			Help:      "Temporal QR lookups made before redemption, by outcome.",
		}, []string{"result"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reminders_sent_total",
			Help:      "Reminder notifications by kind and outcome.",
		}, []string{"kind", "result"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of reminder sweeps.",
			Buckets:   prometheus.DefBuckets,
		}),
		lapsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "members_lapsed_total",
			Help:      "Members moved to defeated by housekeeping.",
		}),
	}

	collectors := []prometheus.Collector{m.checkins, m.payments, m.qrIssued, m.qrConsumed, m.qrPeeked, m.reminders, m.sweepDuration, m.lapsed}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, fmt.Errorf("register gym metric: %w", err)
			}
			collectors[i] = are.ExistingCollector
		}
	}
	m.checkins = collectors[0].(*prometheus.CounterVec)
	m.payments = collectors[1].(prometheus.Counter)
	m.qrIssued = collectors[2].(*prometheus.CounterVec)
	m.qrConsumed = collectors[3].(*prometheus.CounterVec)
	m.qrPeeked = collectors[4].(*prometheus.CounterVec)
	m.reminders = collectors[5].(*prometheus.CounterVec)
	m.sweepDuration = collectors[6].(prometheus.Histogram)
	m.lapsed = collectors[7].(prometheus.Counter)
	return m, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns metrics registered on the default registry.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(prometheus.DefaultRegisterer)
		if err != nil {
			panic(err)
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if e := CodeOf(err); e != "server_error" {
		return e
	}
	return "error"
}

func (m *Metrics) checkin(method string, err error) {
	if m == nil {
		return
	}
	m.checkins.WithLabelValues(method, resultLabel(err)).Inc()
}

func (m *Metrics) payment() {
	if m == nil {
		return
	}
	m.payments.Inc()
}

func (m *Metrics) issued(kind string) {
	if m == nil {
		return
	}
	m.qrIssued.WithLabelValues(kind).Inc()
}

func (m *Metrics) consumed(err error) {
	if m == nil {
		return
	}
	m.qrConsumed.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) peeked(err error) {
	if m == nil {
		return
	}
	m.qrPeeked.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) reminder(kind ReminderKind, err error) {
	if m == nil {
		return
	}
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.reminders.WithLabelValues(string(kind), result).Inc()
}

func (m *Metrics) sweep(d time.Duration) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(d.Seconds())
}

func (m *Metrics) markedLapsed(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.lapsed.Add(float64(n))
}
