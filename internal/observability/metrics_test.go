package observability_test

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordAssessment(t *testing.T) {
	m := observability.NewMetricsForTesting()
	cat := domain.DefaultCatalog()
	quiet := domain.RiskInput{Latitude: 30, Longitude: 140, DepthKm: 85, DaysSinceLastEq: 45, AvgMagnitude: 3.8}

	near := domain.Assess(domain.RiskInput{Latitude: 35.6762, Longitude: 139.6503, DepthKm: 15, DaysSinceLastEq: 1, AvgMagnitude: 6.2}, cat, domain.Place{}, domain.LocaleEnglish)
	far := domain.Assess(quiet, cat, domain.Place{}, domain.LocaleEnglish)
	none := domain.Assess(quiet, domain.NewCatalog(nil, nil), domain.Place{}, domain.LocaleEnglish)

	m.RecordAssessment("http", near, time.Millisecond)
	m.RecordAssessment("pipeline", far, time.Millisecond)
	m.RecordAssessment("pipeline", none, time.Millisecond)

	assert.InDelta(t, 1, counterValue(t, m.Assessments.WithLabelValues("http", "high")), 0)
	assert.InDelta(t, 2, counterValue(t, m.Assessments.WithLabelValues("pipeline", "low")), 0)
	assert.InDelta(t, 1, counterValue(t, m.ReferenceLookups.WithLabelValues("blended")), 0)
	assert.InDelta(t, 1, counterValue(t, m.ReferenceLookups.WithLabelValues("far")), 0)
	assert.InDelta(t, 1, counterValue(t, m.ReferenceLookups.WithLabelValues("none")), 0)
}

func TestRecordValidationFailure(t *testing.T) {
	m := observability.NewMetricsForTesting()

	m.RecordValidationFailure(domain.Validate(domain.RiskInput{Latitude: 10, Longitude: 139}))
	m.RecordValidationFailure(assert.AnError)

	assert.InDelta(t, 1, counterValue(t, m.ValidationFailures.WithLabelValues("location")), 0)
	assert.InDelta(t, 0, counterValue(t, m.ValidationFailures.WithLabelValues("range")), 0)
	assert.InDelta(t, 0, counterValue(t, m.ValidationFailures.WithLabelValues("invalid_input")), 0)
}

func TestMetrics_Namespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetricsForTesting()
	m.CatalogLocations.Set(20)

	require.NoError(t, reg.Register(m.CatalogLocations))
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "quake_risk_catalog_locations", families[0].GetName())
}
