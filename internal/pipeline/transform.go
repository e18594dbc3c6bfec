package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
)

// AssessmentTransformer implements Transformer: it parses and validates a
// request, names the point, and scores it against the catalog.
type AssessmentTransformer struct {
	catalog       *domain.Catalog
	geocoder      domain.Geocoder
	defaultLocale domain.Locale
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// NewTransformer creates an AssessmentTransformer. Pass a nil geocoder to
// name points offline only.
func NewTransformer(catalog *domain.Catalog, geocoder domain.Geocoder, defaultLocale domain.Locale, logger *slog.Logger, metrics *observability.Metrics) *AssessmentTransformer {
	return &AssessmentTransformer{
		catalog:       catalog,
		geocoder:      geocoder,
		defaultLocale: defaultLocale,
		logger:        logger,
		metrics:       metrics,
	}
}

func (t *AssessmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.PredictionRecord, error) {
	start := time.Now()

	req, err := domain.ParseRawEvent(raw)
	if err != nil {
		t.metrics.RecordValidationFailure(err)
		return domain.PredictionRecord{}, err
	}
	if err := domain.Validate(req.RiskInput); err != nil {
		t.metrics.RecordValidationFailure(err)
		return domain.PredictionRecord{}, err
	}

	loc := t.defaultLocale
	if req.Locale != "" {
		loc = domain.ParseLocale(req.Locale)
	}

	place := domain.ResolvePlace(ctx, req.Latitude, req.Longitude, t.geocoder, loc, t.logger)
	a := domain.Assess(req.RiskInput, t.catalog, place, loc)
	t.metrics.RecordAssessment("pipeline", a, time.Since(start))

	return a.Record, nil
}
