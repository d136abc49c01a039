package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ExporterNone   = "none"
	ExporterOTLP   = "otlp"
	ExporterZipkin = "zipkin"
)

type Options struct {
	ServiceName    string
	Exporter       string
	OTLPEndpoint   string
	ZipkinEndpoint string
}

// InitProvider installs the global tracer provider and propagator and returns its
// shutdown function. With ExporterNone spans are created but never exported.
func InitProvider(ctx context.Context, opts Options) (func(context.Context) error, error) {
	otel.SetLogger(stdr.New(log.Default()))

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providerOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	exporter, err := newExporter(ctx, opts)
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		providerOpts = append(providerOpts, sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exporter)))
	}

	traceProvider := sdktrace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return traceProvider.Shutdown, nil
}

func newExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	switch opts.Exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterOTLP:
		if opts.OTLPEndpoint == "" {
			return nil, fmt.Errorf("otlp exporter requires an endpoint")
		}
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()

		conn, err := grpc.DialContext(ctx, opts.OTLPEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
		}
		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		return traceExporter, nil
	case ExporterZipkin:
		exporter, err := zipkin.New(opts.ZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create zipkin exporter: %w", err)
		}
		return exporter, nil
	default:
		return nil, fmt.Errorf("unknown exporter %q", opts.Exporter)
	}
}
