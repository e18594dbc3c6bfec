package domain

// CalibratedCase is a reference input with a known expected outcome. When
// RejectedAs is set the input is expected to fail Validate with that kind and
// the score fields are not checked.
type CalibratedCase struct {
	Name             string         `json:"name"`
	Input            RiskInput      `json:"input"`
	ExpectedCategory Category       `json:"expected_category"`
	ExpectedScore    float64        `json:"expected_score"`
	RejectedAs       ValidationKind `json:"rejected_as,omitempty"`
}

// CalibratedCases returns the sample inputs used to demonstrate each risk
// level, followed by the two extreme scenarios.
func CalibratedCases() []CalibratedCase {
	return []CalibratedCase{
		{
			Name:             "HIGH",
			Input:            RiskInput{Latitude: 35.6762, Longitude: 139.6503, DepthKm: 15, DaysSinceLastEq: 1, AvgMagnitude: 6.2},
			ExpectedCategory: CategoryHigh,
			ExpectedScore:    83.5,
		},
		{
			Name:             "MEDIUM",
			Input:            RiskInput{Latitude: 34.6937, Longitude: 135.5023, DepthKm: 45, DaysSinceLastEq: 8, AvgMagnitude: 4.8},
			ExpectedCategory: CategoryMedium,
			ExpectedScore:    55,
		},
		{
			Name:             "LOW",
			Input:            RiskInput{Latitude: 33.5904, Longitude: 130.4017, DepthKm: 85, DaysSinceLastEq: 45, AvgMagnitude: 3.8},
			ExpectedCategory: CategoryLow,
			ExpectedScore:    25,
		},
		{
			Name:             "MAXIMUM",
			Input:            RiskInput{Latitude: 38.2682, Longitude: 140.8694, DepthKm: 5, DaysSinceLastEq: 0, AvgMagnitude: 7.5},
			ExpectedCategory: CategoryHigh,
			ExpectedScore:    83.5,
		},
		{
			Name:             "MINIMUM",
			Input:            RiskInput{Latitude: 26.2044, Longitude: 127.6792, DepthKm: 150, DaysSinceLastEq: 30, AvgMagnitude: 2.5},
			ExpectedCategory: CategoryLow,
			ExpectedScore:    25,
			RejectedAs:       KindLocation,
		},
	}
}
