package domain

import (
	"math"
	"strings"
)

// ReferenceRadiusKm is the distance within which the nearest reference
// location contributes its historical score.
const ReferenceRadiusKm = 50.0

const (
	referenceWeight = 0.4
	minConfidence   = 75.0
	maxConfidence   = 95.0
)

// Refine produces a prediction that starts from the hard-threshold category
// and adjusts it using a direct contribution table and, when the nearest
// reference location is within ReferenceRadiusKm, that location's historical
// score. An empty or nil catalog yields a prediction with no reference.
func Refine(in RiskInput, cat *Catalog, loc Locale) RefinedPrediction {
	base := Classify(in.AvgMagnitude, in.DepthKm, in.DaysSinceLastEq)

	var (
		score float64
		b     strings.Builder
		out   = RefinedPrediction{BaseCategory: base}
	)

	neighbor, ok := cat.Nearest(in.Latitude, in.Longitude)
	switch {
	case !ok:
		b.WriteString(Text(loc, "refine.no_reference"))
	case neighbor.DistanceKm < ReferenceRadiusKm:
		score += ReferenceScore(neighbor.Location) * referenceWeight
		out.ReferenceBlended = true
		b.WriteString(Text(loc, "refine.reference", neighbor.Location.Name, neighbor.DistanceKm))
		cityCat := ClassifyLocation(neighbor.Location)
		b.WriteString(Text(loc, "refine.reference_category", Text(loc, categoryKey("category", cityCat))))
	default:
		b.WriteString(Text(loc, "refine.reference_far", neighbor.Location.Name, neighbor.DistanceKm))
	}
	if ok {
		n := neighbor
		out.Reference = &n
		out.NearestLocationName = neighbor.Location.Name
	}

	switch {
	case in.DepthKm < 30:
		score += 40
		b.WriteString(Text(loc, "refine.depth.shallow"))
	case in.DepthKm < 70:
		score += 20
		b.WriteString(Text(loc, "refine.depth.moderate"))
	default:
		score += 5
		b.WriteString(Text(loc, "refine.depth.deep"))
	}

	switch {
	case in.AvgMagnitude > 5.5:
		score += 35
		b.WriteString(Text(loc, "refine.magnitude.high"))
	case in.AvgMagnitude > 4.5:
		score += 20
		b.WriteString(Text(loc, "refine.magnitude.moderate"))
	default:
		score += 5
		b.WriteString(Text(loc, "refine.magnitude.low"))
	}

	switch {
	case in.DaysSinceLastEq < 3:
		score += 25
		b.WriteString(Text(loc, "refine.time.recent"))
	case in.DaysSinceLastEq < 15:
		score += 15
		b.WriteString(Text(loc, "refine.time.regional"))
	case in.DaysSinceLastEq > 365:
		score += 10
		b.WriteString(Text(loc, "refine.time.quiet"))
	}

	final := base
	switch {
	case score >= highScoreThreshold:
		final = CategoryHigh
	case score >= mediumScoreThreshold && final == CategoryLow:
		final = CategoryMedium
	}

	out.Category = final
	out.RawScore = score
	out.Confidence = math.Min(maxConfidence, math.Max(minConfidence, score+10))
	out.Narrative = strings.TrimSpace(b.String())
	return out
}

// ReferenceScore is the historical risk score of a catalog entry, capped at 100.
func ReferenceScore(l ReferenceLocation) float64 {
	var score float64

	switch {
	case l.AvgMagnitude > 5.0:
		score += 30
	case l.AvgMagnitude > 4.5:
		score += 20
	default:
		score += 10
	}

	switch {
	case l.DaysSinceLastEq < 3:
		score += 25
	case l.DaysSinceLastEq < 10:
		score += 15
	case l.DaysSinceLastEq > 365:
		score += 10
	}

	switch {
	case l.DepthKm < 50:
		score += 20
	case l.DepthKm < 70:
		score += 10
	}

	return math.Min(score, 100)
}
