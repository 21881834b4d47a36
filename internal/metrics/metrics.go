// Package metrics exports batch and service outcomes to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/domain"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/service"
)

const namespace = "aiexplorer"

// Collector is both a batch.Observer and a service.UseCaseObserver.
type Collector struct {
	registry *prometheus.Registry

	batches       *prometheus.CounterVec
	rows          *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	calls         *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
}

var (
	_ batch.Observer          = (*Collector)(nil)
	_ service.UseCaseObserver = (*Collector)(nil)
)

// New builds a Collector on its own registry, with Go runtime and process
// collectors included.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batch upserts by entity, id mode and outcome.",
		}, []string{"entity", "mode", "outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written by committed batches.",
		}, []string{"entity", "op"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch upserts, transaction included.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"entity"}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "service_calls_total",
			Help:      "Service calls by name and outcome.",
		}, []string{"use_case", "outcome"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "service_call_duration_seconds",
			Help:      "Wall time of service calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
	}
	c.registry.MustRegister(
		c.batches, c.rows, c.batchDuration, c.calls, c.callDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) ObserveBatch(_ context.Context, ev batch.Event) {
	c.batches.WithLabelValues(ev.Entity, ev.Mode.String(), Outcome(ev.Err)).Inc()
	c.batchDuration.WithLabelValues(ev.Entity).Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		return
	}
	c.rows.WithLabelValues(ev.Entity, "insert").Add(float64(ev.Inserts))
	c.rows.WithLabelValues(ev.Entity, "update").Add(float64(ev.Updates))
}

func (c *Collector) ObserveUseCase(_ context.Context, ev service.UseCaseEvent) {
	c.calls.WithLabelValues(ev.Name, Outcome(ev.Err)).Inc()
	c.callDuration.WithLabelValues(ev.Name).Observe(ev.Duration.Seconds())
}

// Outcome is the label value for err: "ok", one of the batch error kinds,
// or "error" for anything unclassified.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotStakeholder):
		return "not_stakeholder"
	case errors.Is(err, batch.ErrValidation):
		return "validation"
	case errors.Is(err, batch.ErrNotFound):
		return "not_found"
	case errors.Is(err, batch.ErrContention):
		return "contention"
	case errors.Is(err, batch.ErrSchemaMode):
		return "schema_mode"
	case errors.Is(err, batch.ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
