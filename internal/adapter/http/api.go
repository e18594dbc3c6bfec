package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/text/language"
)

const maxBodyBytes = 1 << 20

// PredictionSink receives prediction records produced by /v1/risk/assess.
type PredictionSink interface {
	LoadBatch(ctx context.Context, records []domain.PredictionRecord) error
}

// API serves the risk scoring endpoints.
type API struct {
	catalog       *domain.Catalog
	geocoder      domain.Geocoder
	sink          PredictionSink
	defaultLocale domain.Locale
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// APIOption configures an API.
type APIOption func(*API)

// WithGeocoder names assessed points with g instead of the offline table.
func WithGeocoder(g domain.Geocoder) APIOption {
	return func(a *API) { a.geocoder = g }
}

// WithSink forwards assessment records to s.
func WithSink(s PredictionSink) APIOption {
	return func(a *API) { a.sink = s }
}

// NewAPI creates the risk API over a catalog.
func NewAPI(catalog *domain.Catalog, defaultLocale domain.Locale, logger *slog.Logger, metrics *observability.Metrics, opts ...APIOption) *API {
	a := &API{
		catalog:       catalog,
		defaultLocale: defaultLocale,
		logger:        logger,
		metrics:       metrics,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/risk/evaluate", a.handleEvaluate)
	mux.HandleFunc("POST /v1/risk/classify", a.handleClassify)
	mux.HandleFunc("POST /v1/risk/refine", a.handleRefine)
	mux.HandleFunc("POST /v1/risk/assess", a.handleAssess)
	mux.HandleFunc("GET /v1/catalog", a.handleCatalog)
	mux.HandleFunc("GET /v1/catalog/{name}", a.handleCatalogEntry)
	mux.HandleFunc("GET /v1/zones", a.handleZones)
}

// --- responses ---

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind        string `json:"kind"`
	Field       string `json:"field,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type classifyResponse struct {
	Category domain.Category `json:"category"`
	Label    string          `json:"label"`
}

type refineResponse struct {
	domain.RefinedPrediction
	Place domain.Place `json:"place"`
}

type assessResponse struct {
	domain.Assessment
	Stored bool `json:"stored"`
}

type catalogEntry struct {
	domain.ReferenceLocation
	Category       domain.Category `json:"category"`
	ReferenceScore float64         `json:"reference_score"`
	DistanceKm     *float64        `json:"distance_km,omitempty"`
}

type catalogResponse struct {
	Count     int            `json:"count"`
	RadiusKm  float64        `json:"radius_km,omitempty"`
	Locations []catalogEntry `json:"locations"`
}

type zonesResponse struct {
	RadiusKm float64              `json:"radius_km"`
	Zones    []domain.SeismicZone `json:"zones"`
}

// --- handlers ---

func (a *API) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	loc := a.locale(r)
	in, ok := a.decodeInput(w, r, loc)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, domain.Evaluate(in, loc))
}

func (a *API) handleClassify(w http.ResponseWriter, r *http.Request) {
	loc := a.locale(r)
	in, ok := a.decodeInput(w, r, loc)
	if !ok {
		return
	}
	cat := domain.Classify(in.AvgMagnitude, in.DepthKm, in.DaysSinceLastEq)
	sharedobs.WriteJSON(w, http.StatusOK, classifyResponse{
		Category: cat,
		Label:    domain.Text(loc, "category."+string(cat)),
	})
}

func (a *API) handleRefine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	loc := a.locale(r)
	in, ok := a.decodeInput(w, r, loc)
	if !ok {
		return
	}
	place := domain.ResolvePlace(r.Context(), in.Latitude, in.Longitude, a.geocoder, loc, a.logger)
	refined := domain.Refine(in, a.catalog, loc)
	a.metrics.RecordAssessment("http", domain.Assessment{Refined: refined, Place: place}, time.Since(start))

	sharedobs.WriteJSON(w, http.StatusOK, refineResponse{RefinedPrediction: refined, Place: place})
}

func (a *API) handleAssess(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	loc := a.locale(r)
	in, ok := a.decodeInput(w, r, loc)
	if !ok {
		return
	}
	place := domain.ResolvePlace(r.Context(), in.Latitude, in.Longitude, a.geocoder, loc, a.logger)
	assessment := domain.Assess(in, a.catalog, place, loc)
	a.metrics.RecordAssessment("http", assessment, time.Since(start))

	stored := false
	if a.sink != nil {
		if err := a.sink.LoadBatch(r.Context(), []domain.PredictionRecord{assessment.Record}); err != nil {
			a.logger.Warn("prediction sink failed", "id", assessment.Record.ID, "error", err)
		} else {
			stored = true
		}
	}

	sharedobs.WriteJSON(w, http.StatusOK, assessResponse{Assessment: assessment, Stored: stored})
}

// handleCatalog lists every reference location, or with lat and lon only
// those within radius_km (default ReferenceRadiusKm) of the point.
func (a *API) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" && q.Get("lon") == "" {
		locations := a.catalog.Locations()
		entries := make([]catalogEntry, 0, len(locations))
		for _, l := range locations {
			entries = append(entries, newCatalogEntry(l))
		}
		sharedobs.WriteJSON(w, http.StatusOK, catalogResponse{Count: len(entries), Locations: entries})
		return
	}

	lat, lon, radius, ok := parsePointQuery(w, q, domain.ReferenceRadiusKm)
	if !ok {
		return
	}
	neighbors := a.catalog.Within(lat, lon, radius)
	entries := make([]catalogEntry, 0, len(neighbors))
	for _, n := range neighbors {
		e := newCatalogEntry(n.Location)
		d := n.DistanceKm
		e.DistanceKm = &d
		entries = append(entries, e)
	}
	sharedobs.WriteJSON(w, http.StatusOK, catalogResponse{Count: len(entries), RadiusKm: radius, Locations: entries})
}

func (a *API) handleCatalogEntry(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	l, ok := a.catalog.Lookup(name)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown location: " + name})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, newCatalogEntry(l))
}

func (a *API) handleZones(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := parsePointQuery(w, r.URL.Query(), domain.DefaultZoneRadiusKm)
	if !ok {
		return
	}
	zones := a.catalog.ZonesNear(lat, lon, radius)
	if zones == nil {
		zones = []domain.SeismicZone{}
	}
	sharedobs.WriteJSON(w, http.StatusOK, zonesResponse{RadiusKm: radius, Zones: zones})
}

// parsePointQuery reads lat, lon and an optional radius_km. A missing or zero
// radius means defaultRadius. On failure it writes a 400 and returns false.
func parsePointQuery(w http.ResponseWriter, q url.Values, defaultRadius float64) (lat, lon, radius float64, ok bool) {
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil || math.IsNaN(lat) || math.IsNaN(lon) {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lon query parameters are required"})
		return 0, 0, 0, false
	}

	radius = defaultRadius
	if s := q.Get("radius_km"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || v < 0 {
			sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid radius_km"})
			return 0, 0, 0, false
		}
		if v > 0 {
			radius = v
		}
	}
	return lat, lon, radius, true
}

func newCatalogEntry(l domain.ReferenceLocation) catalogEntry {
	return catalogEntry{
		ReferenceLocation: l,
		Category:          domain.ClassifyLocation(l),
		ReferenceScore:    domain.ReferenceScore(l),
	}
}

// decodeInput reads and validates a RiskInput body. Broken JSON and missing,
// unknown or mistyped fields answer 400; values that fail Validate answer
// 422. On failure it writes the error response and returns false.
func (a *API) decodeInput(w http.ResponseWriter, r *http.Request, loc domain.Locale) (domain.RiskInput, bool) {
	in, err := domain.DecodeRiskInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		a.logger.Debug("malformed request body", "path", r.URL.Path, "error", err)
		a.metrics.RecordValidationFailure(err)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			verr = &domain.ValidationError{Kind: domain.KindInvalidInput}
		}
		writeValidationError(w, http.StatusBadRequest, verr, loc)
		return domain.RiskInput{}, false
	}

	if err := domain.Validate(in); err != nil {
		a.metrics.RecordValidationFailure(err)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			verr = &domain.ValidationError{Kind: domain.KindInvalidInput}
		}
		writeValidationError(w, http.StatusUnprocessableEntity, verr, loc)
		return domain.RiskInput{}, false
	}
	return in, true
}

func writeValidationError(w http.ResponseWriter, status int, verr *domain.ValidationError, loc domain.Locale) {
	sharedobs.WriteJSON(w, status, errorBody{Error: errorDetail{
		Kind:        string(verr.Kind),
		Field:       verr.Field,
		Title:       verr.Title(loc),
		Description: verr.Description(loc),
	}})
}

// --- locale negotiation ---

var (
	supportedTags    = []language.Tag{language.English, language.Japanese}
	supportedLocales = []domain.Locale{domain.LocaleEnglish, domain.LocaleJapanese}
	localeMatcher    = language.NewMatcher(supportedTags)
)

// locale picks the response language from the lang query parameter, then the
// Accept-Language header, then the configured default.
func (a *API) locale(r *http.Request) domain.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			if l, ok := matchLocale(tag); ok {
				return l
			}
		}
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			if l, ok := matchLocale(tags...); ok {
				return l
			}
		}
	}
	return a.defaultLocale
}

func matchLocale(tags ...language.Tag) (domain.Locale, bool) {
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return supportedLocales[idx], true
}
