package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false}, discardLogger())

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_WithoutExporter(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := Setup(context.Background(), Config{
		Enabled:     true,
		ServiceName: "branchledger-test",
		SampleRatio: 1,
	}, discardLogger())
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "OpenAccount")
	sc := span.SpanContext()
	span.End()

	assert.True(t, sc.HasTraceID(), "spans get real trace IDs for log correlation")
	assert.True(t, sc.IsSampled())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_ZeroRatioDropsSpans(t *testing.T) {
	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := Setup(context.Background(), Config{Enabled: true, SampleRatio: 0}, discardLogger())
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, span := otel.Tracer("test").Start(context.Background(), "Deposit")
	defer span.End()

	assert.False(t, span.SpanContext().IsSampled())
}
