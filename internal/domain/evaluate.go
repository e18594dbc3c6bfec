package domain

// Factor weights for the combined score.
const (
	depthWeight     = 0.4
	timeWeight      = 0.3
	magnitudeWeight = 0.3
)

// Combined score thresholds.
const (
	highScoreThreshold   = 70.0
	mediumScoreThreshold = 40.0
)

// Evaluate scores each factor and combines them with fixed weights into an
// overall score and category. It is the detailed strategy; see Classify for
// the quick categorization used by headlines and the catalog.
func Evaluate(in RiskInput, loc Locale) CombinedResult {
	depth := ScoreDepth(in.DepthKm, loc)
	recency := ScoreTime(in.DaysSinceLastEq, loc)
	magnitude := ScoreMagnitude(in.AvgMagnitude, loc)

	score := depthWeight*depth.Score + timeWeight*recency.Score + magnitudeWeight*magnitude.Score
	cat := CategoryForScore(score)

	return CombinedResult{
		Category:       cat,
		Score:          score,
		Factors:        []FactorResult{depth, recency, magnitude},
		Label:          Text(loc, "label.combined"),
		Narrative:      Text(loc, categoryKey("combined.narrative", cat), score),
		Recommendation: Text(loc, categoryKey("combined.recommendation", cat)),
	}
}

// CategoryForScore maps a combined score onto a category: >=70 high, >=40
// medium, anything else low.
func CategoryForScore(score float64) Category {
	switch {
	case score >= highScoreThreshold:
		return CategoryHigh
	case score >= mediumScoreThreshold:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// Classify is the hard-threshold categorizer. Every condition of a level must
// hold for that level to apply.
func Classify(avgMagnitude, depthKm float64, days int) Category {
	switch {
	case avgMagnitude >= 5.0 && depthKm <= 60 && days <= 2:
		return CategoryHigh
	case avgMagnitude >= 4.5 && depthKm <= 70 && days <= 6:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

// ClassifyLocation applies Classify to a catalog entry's stored observations.
func ClassifyLocation(l ReferenceLocation) Category {
	return Classify(l.AvgMagnitude, l.DepthKm, l.DaysSinceLastEq)
}
