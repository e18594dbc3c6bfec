package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// PredictionRecord is the persisted form of one assessment.
type PredictionRecord struct {
	ID                string    `json:"id"`
	Latitude          float64   `json:"latitude"`
	Longitude         float64   `json:"longitude"`
	Depth             float64   `json:"depth"`
	Magnitude         float64   `json:"magnitude"`
	DaysSinceLast     int       `json:"days_since_last"`
	RiskLevel         Category  `json:"risk_level"`
	Confidence        float64   `json:"confidence"`
	CombinedScore     float64   `json:"combined_score"`
	PredictionDetails string    `json:"prediction_details"`
	WarningEN         string    `json:"warning_en"`
	WarningJA         string    `json:"warning_jp"`
	NearestLocation   string    `json:"nearest_location,omitempty"`
	PlaceName         string    `json:"place_name,omitempty"`
	PlaceSource       string    `json:"place_source,omitempty"`
	PredictedAt       time.Time `json:"predicted_at"`
}

// Assessment bundles the detailed breakdown, the refined prediction and the
// record built from them.
type Assessment struct {
	Combined CombinedResult    `json:"combined"`
	Refined  RefinedPrediction `json:"refined"`
	Place    Place             `json:"place"`
	Record   PredictionRecord  `json:"record"`
}

// Assess runs the full scoring path for an input that has already passed
// Validate.
func Assess(in RiskInput, cat *Catalog, place Place, loc Locale) Assessment {
	combined := Evaluate(in, loc)
	refined := Refine(in, cat, loc)
	return Assessment{
		Combined: combined,
		Refined:  refined,
		Place:    place,
		Record:   NewPredictionRecord(in, combined, refined, place),
	}
}

// NewPredictionRecord builds the record for an assessment. The risk level is
// the refined category; warnings carry the combined recommendation in both
// languages. IDs are derived from the inputs, so repeated assessments of the
// same observations share an ID.
func NewPredictionRecord(in RiskInput, combined CombinedResult, refined RefinedPrediction, place Place) PredictionRecord {
	return PredictionRecord{
		ID:                generateID(in),
		Latitude:          in.Latitude,
		Longitude:         in.Longitude,
		Depth:             in.DepthKm,
		Magnitude:         in.AvgMagnitude,
		DaysSinceLast:     in.DaysSinceLastEq,
		RiskLevel:         refined.Category,
		Confidence:        refined.Confidence,
		CombinedScore:     combined.Score,
		PredictionDetails: refined.Narrative,
		WarningEN:         Text(LocaleEnglish, categoryKey("combined.recommendation", combined.Category)),
		WarningJA:         Text(LocaleJapanese, categoryKey("combined.recommendation", combined.Category)),
		NearestLocation:   refined.NearestLocationName,
		PlaceName:         place.Name,
		PlaceSource:       place.Source,
		PredictedAt:       clock.Now().UTC(),
	}
}

func generateID(in RiskInput) string {
	input := fmt.Sprintf("%.4f|%.4f|%g|%d|%g", in.Latitude, in.Longitude, in.DepthKm, in.DaysSinceLastEq, in.AvgMagnitude)
	hash := sha256.Sum256([]byte(input))
	return "pred-" + hex.EncodeToString(hash[:8])
}
