package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/ports/outbound"
)

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	TracingEnabled bool
	OTLPEndpoint   string
	OTLPInsecure   bool
	SamplingRate   float64

	// Registerer receives the otel metrics; nil disables the meter provider
	Registerer prometheus.Registerer
}

// Telemetry owns the tracer and meter providers
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	meter          metric.Meter
	logger         *zap.Logger
	config         TelemetryConfig
}

// NewTelemetry creates the providers and installs them globally
func NewTelemetry(ctx context.Context, config TelemetryConfig, logger *zap.Logger) (*Telemetry, error) {
	t := &Telemetry{
		logger: logger,
		config: config,
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.TracingEnabled && config.OTLPEndpoint != "" {
		if err := t.initializeTracing(ctx, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if config.Registerer != nil {
		if err := t.initializeMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.Info("OpenTelemetry initialized",
		zap.String("service", config.ServiceName),
		zap.String("version", config.ServiceVersion),
		zap.String("environment", config.Environment),
		zap.Bool("tracing_enabled", t.tracerProvider != nil),
		zap.Bool("metrics_enabled", t.meterProvider != nil),
	)

	return t, nil
}

func (t *Telemetry) initializeTracing(ctx context.Context, res *resource.Resource) error {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.config.OTLPEndpoint)}
	if t.config.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	var exporter *otlptrace.Exporter
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	t.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.config.SamplingRate))),
	)

	otel.SetTracerProvider(t.tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.logger.Info("OTLP trace exporter configured",
		zap.String("endpoint", t.config.OTLPEndpoint),
		zap.Float64("sampling_rate", t.config.SamplingRate),
	)
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	exporter, err := otelprom.New(otelprom.WithRegisterer(t.config.Registerer))
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(t.meterProvider)

	t.meter = t.meterProvider.Meter(
		t.config.ServiceName,
		metric.WithInstrumentationVersion(t.config.ServiceVersion),
		metric.WithSchemaURL(semconv.SchemaURL),
	)
	return nil
}

// InstrumentHTTPHandler wraps handler with otelhttp spans and metrics
func (t *Telemetry) InstrumentHTTPHandler(handler http.Handler, operation string) http.Handler {
	opts := []otelhttp.Option{}
	if t.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(t.tracerProvider))
	}
	if t.meterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(t.meterProvider))
	}
	return otelhttp.NewHandler(handler, operation, opts...)
}

// AnalysisMetrics decorates base with an otel latency histogram. Without a
// meter provider base is returned unchanged.
func (t *Telemetry) AnalysisMetrics(base outbound.AnalysisMetrics) (outbound.AnalysisMetrics, error) {
	if t.meter == nil {
		return base, nil
	}
	latency, err := t.meter.Float64Histogram(
		"composer.analysis.latency",
		metric.WithDescription("Composition analysis latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis histogram: %w", err)
	}
	return &otelAnalysisMetrics{AnalysisMetrics: base, latency: latency}, nil
}

// Tracer returns a tracer from the global provider
func (t *Telemetry) Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var firstErr error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type otelAnalysisMetrics struct {
	outbound.AnalysisMetrics
	latency metric.Float64Histogram
}

func (m *otelAnalysisMetrics) ObserveAnalysis(variant string, duration time.Duration, missing, suggestions int) {
	m.AnalysisMetrics.ObserveAnalysis(variant, duration, missing, suggestions)
	m.latency.Record(context.Background(), duration.Seconds(),
		metric.WithAttributes(attribute.String("variant", variant)))
}
