// Package domain scores earthquake risk for a point in Japan.
//
// # Inputs
//
// Every assessment starts from five observations:
//
//	latitude, longitude     WGS-84 degrees, Japan geofence lat 24..46, lon 129..146
//	depth                   km, depth of the last recorded seismic activity (0..1000)
//	days since last quake   whole days (0..10000)
//	average magnitude       historical average for the area (0..10)
//
// Collaborators run [Validate] before calling into the scorers. The scorers
// themselves are total over the validated domain and never fail.
//
// # Factor scores
//
// Each observation maps to a 0-100 factor score and a category:
//
//	Depth:     <=30km 85 high | <=70km 55 medium | >70km 25 low
//	Time:      <=3d 75 high | <=15d 50 medium | >=365d 60 medium | otherwise 20 low
//	Magnitude: >=5.5 90 high | >=4.5 60 medium | <4.5 30 low
//
// The >=365 day band reflects long quiescence, which can indicate stress
// accumulation, so it scores above the normal 16-364 day interval.
//
// # Two categorizers
//
// [Evaluate] combines factor scores as 0.4*depth + 0.3*time + 0.3*magnitude and
// thresholds at 70 (high) and 40 (medium). It backs the detailed breakdown.
//
// [Classify] is an AND-of-conditions gate:
//
//	high:   magnitude >= 5.0 AND depth <= 60 AND days <= 2
//	medium: magnitude >= 4.5 AND depth <= 70 AND days <= 6
//	low:    otherwise
//
// It backs the headline category, catalog classification, and the base
// category of [Refine]. The two can disagree for the same input.
//
// # Refinement
//
// [Refine] looks up the nearest [ReferenceLocation] by haversine distance. A
// reference within 50 km contributes 40% of its historical [ReferenceScore]. A
// second, coarser contribution table (depth 40/20/5, magnitude 35/20/5,
// recency 25/15/10) adds the direct observations. The blended score can raise
// the base category but never lowers it. Confidence is the score plus 10,
// clamped to 75..95.
package domain
