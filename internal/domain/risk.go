package domain

// Category is a three-level risk classification.
type Category string

const (
	CategoryLow    Category = "low"
	CategoryMedium Category = "medium"
	CategoryHigh   Category = "high"
)

// Rank orders categories so callers can compare severity: low < medium < high.
// Unknown values rank below low.
func (c Category) Rank() int {
	switch c {
	case CategoryLow:
		return 1
	case CategoryMedium:
		return 2
	case CategoryHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	return c.Rank() > 0
}

// Factor identifies the observation a factor score was derived from.
type Factor string

const (
	FactorDepth     Factor = "depth"
	FactorTime      Factor = "time"
	FactorMagnitude Factor = "magnitude"
)

// RiskInput holds the five observations for one assessment. Values are
// expected to have passed Validate.
type RiskInput struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	DepthKm         float64 `json:"depth_km"`
	DaysSinceLastEq int     `json:"days_since_last_eq"`
	AvgMagnitude    float64 `json:"avg_magnitude"`
}

// FactorResult is the score for a single observation.
type FactorResult struct {
	Factor         Factor   `json:"factor"`
	Category       Category `json:"category"`
	Score          float64  `json:"score"`
	Label          string   `json:"label"`
	Narrative      string   `json:"narrative"`
	Recommendation string   `json:"recommendation"`
}

// CombinedResult is the weighted aggregation of the three factor scores.
// Factors are ordered depth, time, magnitude.
type CombinedResult struct {
	Category       Category       `json:"category"`
	Score          float64        `json:"score"`
	Factors        []FactorResult `json:"factors"`
	Label          string         `json:"label"`
	Narrative      string         `json:"narrative"`
	Recommendation string         `json:"recommendation"`
}

// Neighbor is a catalog entry paired with its distance from a query point.
type Neighbor struct {
	Location   ReferenceLocation `json:"location"`
	DistanceKm float64           `json:"distance_km"`
}

// RefinedPrediction is the nearest-reference refinement of an assessment.
// Reference is nil when no reference location was available.
type RefinedPrediction struct {
	Category            Category  `json:"category"`
	BaseCategory        Category  `json:"base_category"`
	Confidence          float64   `json:"confidence"`
	Narrative           string    `json:"narrative"`
	NearestLocationName string    `json:"nearest_location_name,omitempty"`
	RawScore            float64   `json:"raw_score"`
	Reference           *Neighbor `json:"reference,omitempty"`
	ReferenceBlended    bool      `json:"reference_blended"`
}

// HasReference reports whether a nearest reference location was found.
func (p RefinedPrediction) HasReference() bool {
	return p.Reference != nil
}
