package telemetry

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-stock/pkg/config"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// Shutdown vacía y cierra el exportador de trazas.
type Shutdown func(ctx context.Context) error

// InitTracing registra el TracerProvider global. Sin endpoint OTLP las trazas quedan desactivadas
// (el proveedor global no-op de otel) y Shutdown no hace nada.
func InitTracing(ctx context.Context, app config.AppConfig, cfg config.TelemetryConfig, logger *zerolog.Logger) (Shutdown, error) {
	if cfg.OTLPEndpoint == "" {
		logger.Info().Msg("trazas desactivadas (OTEL_EXPORTER_OTLP_ENDPOINT vacío)")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint))
	if err != nil {
		return nil, fmt.Errorf("crear exportador OTLP: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(newResource(app)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	logger.Info().Str("endpoint", cfg.OTLPEndpoint).Msg("trazas OTLP activas")
	return tp.Shutdown, nil
}

func newResource(app config.AppConfig) *sdkresource.Resource {
	return sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(app.Name),
		semconv.DeploymentEnvironmentName(app.Env),
	)
}
