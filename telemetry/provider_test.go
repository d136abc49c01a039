package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProvider_None(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Options{ServiceName: "test", Exporter: ExporterNone})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitProvider_Zipkin(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Options{
		ServiceName:    "test",
		Exporter:       ExporterZipkin,
		ZipkinEndpoint: "http://localhost:9411/api/v2/spans",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitProvider_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown exporter", Options{ServiceName: "test", Exporter: "jaeger"}},
		{"otlp without endpoint", Options{ServiceName: "test", Exporter: ExporterOTLP}},
		{"zipkin with bad url", Options{ServiceName: "test", Exporter: ExporterZipkin, ZipkinEndpoint: "://nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitProvider(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}
