package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"time"

	"github.com/metinatakli/cinex-web/internal/booking"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/instrumentation"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const serviceName = "cinex-web"

const metricExportInterval = 15 * time.Second

// InitTelemetry installs OTLP trace, metric and log providers pointed at the
// configured collector and returns their shutdown function. Without a
// collector it installs nothing.
func InitTelemetry(cfg Config, logger *slog.Logger) (func(context.Context), error) {
	if cfg.OtelCollectorUrl == "" {
		logger.Info("OpenTelemetry collector URL not set, skipping initialization")

		return func(context.Context) {}, nil
	}

	ctx := context.Background()

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel trace exporter: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel metric exporter: %w", err)
	}

	logExporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithInsecure(),
		otlploggrpc.WithEndpoint(cfg.OtelCollectorUrl),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel log exporter: %w", err)
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.AlwaysSample())),
		trace.WithResource(res),
		trace.WithBatcher(traceExporter),
	)

	meterProvider := newMeterProvider(cfg, res,
		metric.NewPeriodicReader(metricExporter, metric.WithInterval(metricExportInterval)))

	loggerProvider := log.NewLoggerProvider(
		log.WithResource(res),
		log.WithProcessor(log.NewBatchProcessor(logExporter)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetMeterProvider(meterProvider)
	global.SetLoggerProvider(loggerProvider)

	logger.Info("telemetry enabled", "collector", cfg.OtelCollectorUrl, "latency_buckets", latencyBuckets(cfg))

	shutdown := func(ctx context.Context) {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err := errors.Join(
			tracerProvider.Shutdown(shutdownCtx),
			meterProvider.Shutdown(shutdownCtx),
			loggerProvider.Shutdown(shutdownCtx),
		)
		if err != nil {
			logger.Error("failed to shutdown telemetry providers", "error", err)
		}
	}

	return shutdown, nil
}

// newResource describes this shell instance, including the reservation
// backend it fronts and the booking limits it enforces.
func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(version),
		semconv.DeploymentEnvironment(cfg.Env),
		attribute.Int("cinex.booking.max_seats", cfg.Booking.MaxSeats),
		attribute.Bool("cinex.booking.idempotency_keys", cfg.Booking.IdempotencyKeys),
	}

	if u, err := url.Parse(cfg.Backend.URL); err == nil && u.Host != "" {
		attrs = append(attrs, attribute.String("cinex.backend.host", u.Host))
	}

	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	return res, nil
}

// newMeterProvider buckets submission and backend call latencies around the
// configured payment delay and submission timeout.
func newMeterProvider(cfg Config, res *resource.Resource, reader metric.Reader) *metric.MeterProvider {
	latency := metric.Stream{
		Aggregation: metric.AggregationExplicitBucketHistogram{Boundaries: latencyBuckets(cfg)},
	}

	return metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(reader),
		metric.WithView(
			metric.NewView(metric.Instrument{Name: booking.SubmissionDurationMetric}, latency),
			metric.NewView(metric.Instrument{
				Name:  "http.client.*duration",
				Scope: instrumentation.Scope{Name: otelhttp.ScopeName},
			}, latency),
		),
	)
}

// latencyBuckets are histogram bounds in seconds.
func latencyBuckets(cfg Config) []float64 {
	buckets := []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

	if d := cfg.Booking.PaymentDelay; d > 0 {
		buckets = append(buckets, d.Seconds())
	}
	if d := cfg.submissionTimeout(); d > 0 {
		buckets = append(buckets, d.Seconds())
	}

	slices.Sort(buckets)

	return slices.Compact(buckets)
}

// MultiHandler fans log records out to every wrapped handler. The shell uses
// it to keep stdout logging while also shipping records to the collector.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{
		handlers: handlers,
	}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle never fails; one broken sink must not silence the others.
func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		_ = handler.Handle(ctx, record)
	}
	return nil
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: newHandlers}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: newHandlers}
}
