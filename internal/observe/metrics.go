// Package observe provides observability primitives for the voice query
// pipeline: OpenTelemetry metrics, tracing helpers, and provider setup with
// a Prometheus exporter bridge.
//
// A package-level default [Metrics] instance ([DefaultMetrics]) is provided
// for convenience; tests should use [NewMetrics] with their own
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for all pipeline metrics.
const meterName = "github.com/ghostquant/voicequery"

// Metrics holds the pipeline's metric instruments. All fields are safe for
// concurrent use — the underlying OTel types handle their own
// synchronisation.
type Metrics struct {
	// StageDuration tracks per-stage processing latency. Attribute:
	//   attribute.String("stage", "normalize"|"rerank"|"wake"|"intent"|"detect")
	StageDuration metric.Float64Histogram

	// TranslateDuration tracks translation round-trip latency.
	TranslateDuration metric.Float64Histogram

	// IntentClassified counts classified intents. Attribute:
	//   attribute.String("kind", ...)
	IntentClassified metric.Int64Counter

	// LanguageDetections counts detection outcomes. Attributes:
	//   attribute.String("language", ...), attribute.String("method", ...)
	LanguageDetections metric.Int64Counter

	// RerankerDecisions counts phonetic reranker outcomes. Attribute:
	//   attribute.Bool("applied", ...)
	RerankerDecisions metric.Int64Counter

	// TranslateFallbacks counts translations degraded to source text.
	TranslateFallbacks metric.Int64Counter

	// ActiveSessions tracks live routing sessions.
	ActiveSessions metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds). The text
// stages complete in microseconds; the tail covers translation calls.
var latencyBuckets = []float64{
	0.00001, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] using the given
// [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.StageDuration, err = m.Float64Histogram("voicequery.stage.duration",
		metric.WithDescription("Latency of a single pipeline stage."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.TranslateDuration, err = m.Float64Histogram("voicequery.translate.duration",
		metric.WithDescription("Latency of response translation calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.IntentClassified, err = m.Int64Counter("voicequery.intent.classified",
		metric.WithDescription("Classified intents by kind."),
	); err != nil {
		return nil, err
	}

	if met.LanguageDetections, err = m.Int64Counter("voicequery.language.detections",
		metric.WithDescription("Language detection outcomes by language and method."),
	); err != nil {
		return nil, err
	}

	if met.RerankerDecisions, err = m.Int64Counter("voicequery.reranker.decisions",
		metric.WithDescription("Phonetic reranker decisions by whether the rewrite was applied."),
	); err != nil {
		return nil, err
	}

	if met.TranslateFallbacks, err = m.Int64Counter("voicequery.translate.fallbacks",
		metric.WithDescription("Translations degraded to the untranslated source text."),
	); err != nil {
		return nil, err
	}

	if met.ActiveSessions, err = m.Int64UpDownCounter("voicequery.sessions.active",
		metric.WithDescription("Live language routing sessions."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the process-wide [Metrics] built on the global
// meter provider. The first call wins; call it after [InitProvider].
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			// Instrument creation only fails on invalid names, which are
			// compile-time constants here.
			panic(err)
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordStage records one stage duration in seconds.
func (m *Metrics) RecordStage(ctx context.Context, stage string, seconds float64) {
	m.StageDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("stage", stage)))
}
