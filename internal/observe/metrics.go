// Package observe provides application-wide observability primitives for
// Emend: OpenTelemetry metrics, tracing, structured logging, and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still
// be scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Emend metrics.
const meterName = "github.com/typecraft/emend"

// Decision outcome attribute values for [Metrics.RecordDecision].
const (
	OutcomeAuto        = "auto"
	OutcomeSuggestions = "suggestions"
	OutcomeNone        = "none"
)

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// DecisionDuration tracks the latency of a single decide call. The
	// engine sits on the keystroke path, so buckets go down to tens of
	// microseconds.
	DecisionDuration metric.Float64Histogram

	// Decisions counts decide calls. Use with attribute:
	//   attribute.String("outcome", OutcomeAuto|OutcomeSuggestions|OutcomeNone)
	Decisions metric.Int64Counter

	// CandidatesGenerated counts correction candidates produced, summed
	// across decide calls.
	CandidatesGenerated metric.Int64Counter

	// PhraseCorrections counts phrase merges/splits applied at commit
	// boundaries.
	PhraseCorrections metric.Int64Counter

	// Acceptances counts accepted corrections recorded into the learning
	// store.
	Acceptances metric.Int64Counter

	// Rejections counts corrections the user undid or dismissed.
	Rejections metric.Int64Counter

	// FlushErrors counts persistence write failures. Use with attribute:
	//   attribute.String("store", ...)
	FlushErrors metric.Int64Counter

	// LearnedWords tracks the current size of the user's learned set.
	LearnedWords metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time on the
	// introspection endpoints. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// decisionBuckets defines histogram bucket boundaries (in seconds) for the
// decide call, which must stay well under input latency thresholds.
var decisionBuckets = []float64{
	0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.DecisionDuration, err = m.Float64Histogram("emend.decision.duration",
		metric.WithDescription("Latency of a single correction decision."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(decisionBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Decisions, err = m.Int64Counter("emend.decisions",
		metric.WithDescription("Total correction decisions by outcome."),
	); err != nil {
		return nil, err
	}
	if met.CandidatesGenerated, err = m.Int64Counter("emend.candidates",
		metric.WithDescription("Total correction candidates produced."),
	); err != nil {
		return nil, err
	}
	if met.PhraseCorrections, err = m.Int64Counter("emend.phrase.corrections",
		metric.WithDescription("Total phrase merges and splits applied."),
	); err != nil {
		return nil, err
	}
	if met.Acceptances, err = m.Int64Counter("emend.acceptances",
		metric.WithDescription("Total accepted corrections recorded."),
	); err != nil {
		return nil, err
	}
	if met.Rejections, err = m.Int64Counter("emend.rejections",
		metric.WithDescription("Total rejected or undone corrections."),
	); err != nil {
		return nil, err
	}
	if met.FlushErrors, err = m.Int64Counter("emend.flush.errors",
		metric.WithDescription("Total persistence write failures by store."),
	); err != nil {
		return nil, err
	}

	if met.LearnedWords, err = m.Int64UpDownCounter("emend.learned_words",
		metric.WithDescription("Current size of the user's learned word set."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("emend.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordDecision records one decide call with its outcome and duration.
func (m *Metrics) RecordDecision(ctx context.Context, outcome string, elapsed time.Duration) {
	m.Decisions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
	m.DecisionDuration.Record(ctx, elapsed.Seconds())
}

// RecordFlushError records a persistence write failure for the named store.
func (m *Metrics) RecordFlushError(ctx context.Context, store string) {
	m.FlushErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("store", store)),
	)
}
