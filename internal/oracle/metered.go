package oracle

import (
	"context"
	"time"

	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Evaluations *prometheus.CounterVec
	Duration    prometheus.Histogram
}

// NewMetrics creates the oracle metrics and registers them with reg when it
// is not nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	var m = &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attrsel",
			Subsystem: "oracle",
			Name:      "evaluations_total",
			Help:      "Subset evaluations by result.",
		}, []string{"result"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "attrsel",
			Subsystem: "oracle",
			Name:      "evaluation_seconds",
			Help:      "Wall time of one subset evaluation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Evaluations, m.Duration} {
			if err := reg.Register(c); err != nil {
				return nil, errors.Wrap(err, "register oracle metrics")
			}
		}
	}
	return m, nil
}

// Metered counts and times the evaluations of the inner oracle.
type Metered struct {
	inner   search.Oracle
	metrics *Metrics
}

func NewMetered(inner search.Oracle, metrics *Metrics) *Metered {
	return &Metered{inner: inner, metrics: metrics}
}

func (m *Metered) Quality(ctx context.Context, attrs subset.Subset) (float64, error) {
	var start = time.Now()
	q, err := m.inner.Quality(ctx, attrs)
	m.metrics.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.metrics.Evaluations.WithLabelValues("error").Inc()
		return 0, err
	}
	m.metrics.Evaluations.WithLabelValues("ok").Inc()
	return q, nil
}
