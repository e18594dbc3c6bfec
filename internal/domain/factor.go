package domain

// Depth bands in kilometers.
const (
	shallowDepthKm  = 30.0
	moderateDepthKm = 70.0
)

// Recency bands in days.
const (
	recentDays    = 3
	detectedDays  = 15
	quiescentDays = 365
)

// Magnitude bands.
const (
	highMagnitude     = 5.5
	moderateMagnitude = 4.5
)

// ScoreDepth scores the hypocenter depth. Shallower events transmit more
// energy to the surface and score higher.
func ScoreDepth(depthKm float64, loc Locale) FactorResult {
	var cat Category
	var score float64
	switch {
	case depthKm <= shallowDepthKm:
		cat, score = CategoryHigh, 85
	case depthKm <= moderateDepthKm:
		cat, score = CategoryMedium, 55
	default:
		cat, score = CategoryLow, 25
	}
	return FactorResult{
		Factor:         FactorDepth,
		Category:       cat,
		Score:          score,
		Label:          Text(loc, "label.depth"),
		Narrative:      Text(loc, categoryKey("depth.narrative", cat), depthKm),
		Recommendation: Text(loc, categoryKey("depth.recommendation", cat)),
	}
}

// ScoreTime scores the number of days since the last earthquake. The bands are
// checked in order: [0,3], (3,15], [365,inf), then everything else.
func ScoreTime(days int, loc Locale) FactorResult {
	var cat Category
	var score float64
	var band string
	switch {
	case days <= recentDays:
		cat, score, band = CategoryHigh, 75, "recent"
	case days <= detectedDays:
		cat, score, band = CategoryMedium, 50, "detected"
	case days >= quiescentDays:
		cat, score, band = CategoryMedium, 60, "quiet"
	default:
		cat, score, band = CategoryLow, 20, "normal"
	}
	return FactorResult{
		Factor:         FactorTime,
		Category:       cat,
		Score:          score,
		Label:          Text(loc, "label.time"),
		Narrative:      Text(loc, "time.narrative."+band, days),
		Recommendation: Text(loc, "time.recommendation."+band),
	}
}

// ScoreMagnitude scores the historical average magnitude.
func ScoreMagnitude(magnitude float64, loc Locale) FactorResult {
	var cat Category
	var score float64
	switch {
	case magnitude >= highMagnitude:
		cat, score = CategoryHigh, 90
	case magnitude >= moderateMagnitude:
		cat, score = CategoryMedium, 60
	default:
		cat, score = CategoryLow, 30
	}
	return FactorResult{
		Factor:         FactorMagnitude,
		Category:       cat,
		Score:          score,
		Label:          Text(loc, "label.magnitude"),
		Narrative:      Text(loc, categoryKey("magnitude.narrative", cat), magnitude),
		Recommendation: Text(loc, categoryKey("magnitude.recommendation", cat)),
	}
}
