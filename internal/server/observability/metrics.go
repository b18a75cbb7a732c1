// Package observability exposes the server's Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "readdaily"

// Metrics groups the collectors updated by the gRPC layer.
type Metrics struct {
	rpcTotal           *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	readsMarked        prometheus.Counter
	likesToggled       *prometheus.CounterVec
	automationCreated  prometheus.Counter
	automationRunTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rpcTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Unary RPCs handled, by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Unary RPC latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		readsMarked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_marked_total",
			Help:      "Articles newly marked as read.",
		}),
		likesToggled: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_toggled_total",
			Help:      "Like toggles, by resulting state.",
		}, []string{"liked"}),
		automationCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_articles_created_total",
			Help:      "Articles created by content automation.",
		}),
		automationRunTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "automation_runs_total",
			Help:      "Content automation runs, by result.",
		}, []string{"result"}),
	}
}

// ObserveRPC records one finished RPC. All recording methods are no-ops on
// a nil *Metrics.
func (m *Metrics) ObserveRPC(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcTotal.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) ReadMarked() {
	if m == nil {
		return
	}
	m.readsMarked.Inc()
}

func (m *Metrics) LikeToggled(liked bool) {
	if m == nil {
		return
	}
	label := "false"
	if liked {
		label = "true"
	}
	m.likesToggled.WithLabelValues(label).Inc()
}

// AutomationRun records a run outcome and the number of articles it created.
func (m *Metrics) AutomationRun(created int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.automationRunTotal.WithLabelValues(result).Inc()
	m.automationCreated.Add(float64(created))
}
