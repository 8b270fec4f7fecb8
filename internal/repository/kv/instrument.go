package kv

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Metrics holds the Prometheus collectors for store operations.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
}

// NewMetrics creates the store collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "herdbook_store_operations_total",
				Help: "Total number of key-value store operations",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "herdbook_store_operation_duration_seconds",
				Help:    "Duration of key-value store operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.OperationsTotal, m.OperationDuration)
	}
	return m
}

type instrumentedBackend struct {
	next    Backend
	metrics *Metrics
	tracer  trace.Tracer
}

// Instrument wraps next with Prometheus metrics and an OpenTelemetry span per call.
func Instrument(next Backend, metrics *Metrics) Backend {
	return &instrumentedBackend{
		next:    next,
		metrics: metrics,
		tracer:  otel.Tracer("github.com/mamadbah2/herdbook/internal/repository/kv"),
	}
}

func (i *instrumentedBackend) observe(span trace.Span, op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	i.metrics.OperationsTotal.WithLabelValues(op, status).Inc()
	i.metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	span.End()
}

func (i *instrumentedBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := i.tracer.Start(ctx, "kv.Get", trace.WithAttributes(attribute.String("kv.key", key)))
	start := time.Now()
	payload, found, err := i.next.Get(ctx, key)
	span.SetAttributes(attribute.Bool("kv.found", found))
	i.observe(span, "get", start, err)
	return payload, found, err
}

func (i *instrumentedBackend) Put(ctx context.Context, key string, payload []byte) error {
	ctx, span := i.tracer.Start(ctx, "kv.Put", trace.WithAttributes(
		attribute.String("kv.key", key),
		attribute.Int("kv.bytes", len(payload)),
	))
	start := time.Now()
	err := i.next.Put(ctx, key, payload)
	i.observe(span, "put", start, err)
	return err
}
