package observability

import (
	"errors"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quake_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Assessment metrics, shared by the HTTP API and the pipeline.
	Assessments        *prometheus.CounterVec   // labels: source={http,pipeline}, category={low,medium,high}
	ValidationFailures *prometheus.CounterVec   // labels: kind={invalid_input,location,range}
	ReferenceLookups   *prometheus.CounterVec   // labels: result={blended,far,none}
	AssessmentDuration *prometheus.HistogramVec // labels: source
	CatalogLocations   prometheus.Gauge

	// Pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	RejectedMessages *prometheus.CounterVec // labels: reason={parse,validation}
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed risk assessments by source and refined category.",
		}, []string{"source", "category"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Inputs rejected before scoring, by failure kind.",
		}, []string{"kind"}),
		ReferenceLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_lookups_total",
			Help:      "Nearest reference lookups by outcome.",
		}, []string{"result"}),
		AssessmentDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Time to validate, name and score one input.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"source"}),
		CatalogLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_locations",
			Help:      "Number of reference locations in the loaded catalog.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total prediction records written to the sink topic.",
		}),
		RejectedMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_messages_total",
			Help:      "Source messages skipped without a prediction, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when reverse geocoding is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Assessments,
		m.ValidationFailures,
		m.ReferenceLookups,
		m.AssessmentDuration,
		m.CatalogLocations,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.RejectedMessages,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}

// RecordAssessment counts a completed assessment and how its reference
// lookup went.
func (m *Metrics) RecordAssessment(source string, a domain.Assessment, elapsed time.Duration) {
	m.Assessments.WithLabelValues(source, string(a.Refined.Category)).Inc()
	m.AssessmentDuration.WithLabelValues(source).Observe(elapsed.Seconds())

	switch {
	case !a.Refined.HasReference():
		m.ReferenceLookups.WithLabelValues("none").Inc()
	case a.Refined.ReferenceBlended:
		m.ReferenceLookups.WithLabelValues("blended").Inc()
	default:
		m.ReferenceLookups.WithLabelValues("far").Inc()
	}
}

// RecordValidationFailure counts err by kind when it is a validation error.
func (m *Metrics) RecordValidationFailure(err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		m.ValidationFailures.WithLabelValues(string(verr.Kind)).Inc()
	}
}
