package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/metinatakli/cinex-web/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

func TestMultiHandler(t *testing.T) {
	var text, debug bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&text, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.With("room_id", 7).WithGroup("view").Info("opened room view", "date", "2095-03-10")
	logger.Debug("migrated room views", "count", 1)

	assert.Contains(t, text.String(), "room_id=7")
	assert.Contains(t, text.String(), "view.date=2095-03-10")
	assert.NotContains(t, text.String(), "migrated room views")

	assert.Contains(t, debug.String(), `"room_id":7`)
	assert.Contains(t, debug.String(), "migrated room views")
}

func TestInitTelemetryWithoutCollector(t *testing.T) {
	shutdown, err := InitTelemetry(Config{}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	shutdown(context.Background())
}

func TestLatencyBuckets(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []float64
	}{
		{
			name: "default booking settings",
			cfg: Config{
				Backend: BackendConfig{Timeout: 10 * time.Second},
				Booking: BookingConfig{PaymentDelay: 1500 * time.Millisecond},
			},
			want: []float64{0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5, 10, 12.5},
		},
		{
			name: "payment delay on an existing bound",
			cfg: Config{
				Backend: BackendConfig{Timeout: 3 * time.Second},
				Booking: BookingConfig{PaymentDelay: time.Second},
			},
			want: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		{
			name: "nothing configured",
			want: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, latencyBuckets(tt.cfg))
		})
	}
}

func TestSubmissionDurationUsesLatencyBuckets(t *testing.T) {
	cfg := Config{
		Backend: BackendConfig{Timeout: 10 * time.Second},
		Booking: BookingConfig{PaymentDelay: 1500 * time.Millisecond},
	}

	ctx := context.Background()
	reader := metric.NewManualReader()
	provider := newMeterProvider(cfg, resource.Empty(), reader)
	defer provider.Shutdown(ctx)

	histogram, err := provider.Meter("test").Float64Histogram(booking.SubmissionDurationMetric)
	require.NoError(t, err)
	histogram.Record(ctx, 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	data, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, data.DataPoints, 1)
	assert.Equal(t, latencyBuckets(cfg), data.DataPoints[0].Bounds)
	assert.Equal(t, uint64(1), data.DataPoints[0].Count)
}

func TestNewResourceDescribesBackend(t *testing.T) {
	cfg := Config{
		Env:     "staging",
		Backend: BackendConfig{URL: "https://api.cinex.example.com:8443/api"},
		Booking: BookingConfig{MaxSeats: 6, IdempotencyKeys: true},
	}

	res, err := newResource(context.Background(), cfg)
	require.NoError(t, err)

	attrs := res.Set()

	host, ok := attrs.Value(attribute.Key("cinex.backend.host"))
	require.True(t, ok)
	assert.Equal(t, "api.cinex.example.com:8443", host.AsString())

	seats, ok := attrs.Value(attribute.Key("cinex.booking.max_seats"))
	require.True(t, ok)
	assert.Equal(t, int64(6), seats.AsInt64())

	env, ok := attrs.Value(attribute.Key("deployment.environment"))
	require.True(t, ok)
	assert.Equal(t, "staging", env.AsString())
}
