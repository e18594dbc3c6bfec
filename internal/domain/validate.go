package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidInput is wrapped by every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationKind tells callers which check rejected an input.
type ValidationKind string

const (
	KindInvalidInput ValidationKind = "invalid_input"
	KindLocation     ValidationKind = "location"
	KindRange        ValidationKind = "range"
)

// ValidationError describes the first field that failed validation.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Kind, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Title returns the localized heading for the error.
func (e *ValidationError) Title(loc Locale) string {
	return Text(loc, "validation."+string(e.Kind)+".title")
}

// Description returns the localized explanation for the error.
func (e *ValidationError) Description(loc Locale) string {
	return Text(loc, "validation."+string(e.Kind)+".description")
}

// Japan geofence and accepted observation ranges.
const (
	MinLatitude  = 24.0
	MaxLatitude  = 46.0
	MinLongitude = 129.0
	MaxLongitude = 146.0

	MaxDepthKm   = 1000.0
	MaxDays      = 10000
	MaxMagnitude = 10.0
)

// Validate checks that every observation is finite, that the point lies
// inside Japan and that the remaining values are within range, in that order.
func Validate(in RiskInput) error {
	finite := []struct {
		field string
		v     float64
	}{
		{"latitude", in.Latitude},
		{"longitude", in.Longitude},
		{"depth_km", in.DepthKm},
		{"avg_magnitude", in.AvgMagnitude},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ValidationError{Kind: KindInvalidInput, Field: f.field}
		}
	}

	if in.Latitude < MinLatitude || in.Latitude > MaxLatitude {
		return &ValidationError{Kind: KindLocation, Field: "latitude"}
	}
	if in.Longitude < MinLongitude || in.Longitude > MaxLongitude {
		return &ValidationError{Kind: KindLocation, Field: "longitude"}
	}

	switch {
	case in.DepthKm < 0 || in.DepthKm > MaxDepthKm:
		return &ValidationError{Kind: KindRange, Field: "depth_km"}
	case in.DaysSinceLastEq < 0 || in.DaysSinceLastEq > MaxDays:
		return &ValidationError{Kind: KindRange, Field: "days_since_last_eq"}
	case in.AvgMagnitude < 0 || in.AvgMagnitude > MaxMagnitude:
		return &ValidationError{Kind: KindRange, Field: "avg_magnitude"}
	}
	return nil
}

// ParseRiskInput converts form values into a RiskInput. Days are read as a
// whole number; a fractional value is truncated. Any value that is not a
// number fails with a KindInvalidInput error. The result is not validated.
func ParseRiskInput(lat, lon, depth, days, magnitude string) (RiskInput, error) {
	var in RiskInput
	var err error

	if in.Latitude, err = parseNumber("latitude", lat); err != nil {
		return RiskInput{}, err
	}
	if in.Longitude, err = parseNumber("longitude", lon); err != nil {
		return RiskInput{}, err
	}
	if in.DepthKm, err = parseNumber("depth_km", depth); err != nil {
		return RiskInput{}, err
	}
	d, err := parseNumber("days_since_last_eq", days)
	if err != nil {
		return RiskInput{}, err
	}
	in.DaysSinceLastEq = int(math.Trunc(d))
	if in.AvgMagnitude, err = parseNumber("avg_magnitude", magnitude); err != nil {
		return RiskInput{}, err
	}
	return in, nil
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Kind: KindInvalidInput, Field: field}
	}
	return v, nil
}
