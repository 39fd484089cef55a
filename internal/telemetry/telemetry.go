// Package telemetry installs the OpenTelemetry providers used by the stores
// and exposes the tracer/meter helpers they call.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const scope = "itsolutions"

// Init sets the global tracer provider. With stdout=false spans are sampled
// but dropped, which keeps the instrumentation cheap in production.
func Init(stdout bool) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{}
	if stdout {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stdout), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func Tracer(component string) trace.Tracer {
	return otel.Tracer(scope + "/" + component)
}

func Meter(component string) metric.Meter {
	return otel.Meter(scope + "/" + component)
}

// Counter returns an Int64Counter, falling back to a no-op one if the
// provider refuses the instrument.
func Counter(component, name, desc string) metric.Int64Counter {
	c, err := Meter(component).Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		c, _ = otel.GetMeterProvider().Meter("noop").Int64Counter(name)
	}
	return c
}

// Start opens a span named component.op with the given attributes.
func Start(ctx context.Context, component, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer(component).Start(ctx, component+"."+op, trace.WithAttributes(attrs...))
}
