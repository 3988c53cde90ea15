// Package observe provides application-wide observability primitives for
// vocabmine: OpenTelemetry metrics, distributed tracing, and structured
// logging tied to the active span.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all vocabmine metrics.
const meterName = "github.com/quailtone/vocabmine"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline ---

	// MiningDuration tracks the latency of one transcript-pair mining run.
	MiningDuration metric.Float64Histogram

	// HintMiningDuration tracks the latency of a batch hint-mining pass.
	HintMiningDuration metric.Float64Histogram

	// ReplaceDuration tracks the latency of applying the dictionary to a
	// transcript.
	ReplaceDuration metric.Float64Histogram

	// --- Counters ---

	// CandidatesExtracted counts correction candidates that survived the
	// mining filter chain.
	CandidatesExtracted metric.Int64Counter

	// SuggestionSightings counts ledger sightings. Use with attribute:
	//   attribute.String("outcome", "created"|"merged"|"skipped")
	SuggestionSightings metric.Int64Counter

	// HintsDiscovered counts phonetic hints found by the batch miner.
	HintsDiscovered metric.Int64Counter

	// ReplacementsApplied counts dictionary replacements. Use with attribute:
	//   attribute.String("source", "exact"|"fuzzy")
	ReplacementsApplied metric.Int64Counter

	// --- Gauges ---

	// PendingSuggestions tracks the number of suggestions awaiting review.
	PendingSuggestions metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) optimised
// for text-pipeline latencies.
var latencyBuckets = []float64{
	0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.MiningDuration, err = m.Float64Histogram("vocabmine.mining.duration",
		metric.WithDescription("Latency of one transcript-pair mining run."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HintMiningDuration, err = m.Float64Histogram("vocabmine.hintmine.duration",
		metric.WithDescription("Latency of a batch hint-mining pass."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ReplaceDuration, err = m.Float64Histogram("vocabmine.replace.duration",
		metric.WithDescription("Latency of applying the dictionary to a transcript."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.CandidatesExtracted, err = m.Int64Counter("vocabmine.mining.candidates",
		metric.WithDescription("Total correction candidates that survived the filter chain."),
	); err != nil {
		return nil, err
	}
	if met.SuggestionSightings, err = m.Int64Counter("vocabmine.ledger.sightings",
		metric.WithDescription("Total ledger sightings by outcome."),
	); err != nil {
		return nil, err
	}
	if met.HintsDiscovered, err = m.Int64Counter("vocabmine.hintmine.hints",
		metric.WithDescription("Total phonetic hints discovered by the batch miner."),
	); err != nil {
		return nil, err
	}
	if met.ReplacementsApplied, err = m.Int64Counter("vocabmine.replace.replacements",
		metric.WithDescription("Total dictionary replacements by match source."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.PendingSuggestions, err = m.Int64UpDownCounter("vocabmine.ledger.pending",
		metric.WithDescription("Number of suggestions awaiting review."),
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

// RecordSighting is a convenience method that records a ledger sighting
// counter increment with the standard outcome attribute.
func (m *Metrics) RecordSighting(ctx context.Context, outcome string) {
	m.SuggestionSightings.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)),
	)
}

// RecordReplacement is a convenience method that records a dictionary
// replacement counter increment with the standard source attribute.
func (m *Metrics) RecordReplacement(ctx context.Context, source string) {
	m.ReplacementsApplied.Add(ctx, 1,
		metric.WithAttributes(attribute.String("source", source)),
	)
}
