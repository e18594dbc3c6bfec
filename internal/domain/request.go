package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// requestBody mirrors the JSON form of an assessment request. Pointers tell
// an absent field apart from an explicit zero.
type requestBody struct {
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	DepthKm         *float64 `json:"depth_km"`
	DaysSinceLastEq *float64 `json:"days_since_last_eq"`
	AvgMagnitude    *float64 `json:"avg_magnitude"`
	Locale          *string  `json:"locale"`
}

// DecodeRiskInput reads one JSON object holding exactly the five
// observations. Unknown, missing, null or non-numeric fields fail with a
// KindInvalidInput error naming the field; broken JSON fails with a plain
// error. The result is not validated.
func DecodeRiskInput(r io.Reader) (RiskInput, error) {
	body, err := decodeRequestBody(r)
	if err != nil {
		return RiskInput{}, err
	}
	if body.Locale != nil {
		return RiskInput{}, &ValidationError{Kind: KindInvalidInput, Field: "locale"}
	}
	return body.riskInput()
}

// ParseRawEvent deserializes a RawEvent's value into an AssessmentRequest
// with the same field rules as DecodeRiskInput, plus an optional locale.
func ParseRawEvent(raw RawEvent) (AssessmentRequest, error) {
	body, err := decodeRequestBody(bytes.NewReader(raw.Value))
	if err != nil {
		return AssessmentRequest{}, fmt.Errorf("parse raw event: %w", err)
	}
	in, err := body.riskInput()
	if err != nil {
		return AssessmentRequest{}, fmt.Errorf("parse raw event: %w", err)
	}
	req := AssessmentRequest{RiskInput: in}
	if body.Locale != nil {
		req.Locale = *body.Locale
	}
	return req, nil
}

func decodeRequestBody(r io.Reader) (requestBody, error) {
	var body requestBody
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return requestBody{}, &ValidationError{Kind: KindInvalidInput, Field: typeErr.Field}
		}
		if field, ok := unknownField(err); ok {
			return requestBody{}, &ValidationError{Kind: KindInvalidInput, Field: field}
		}
		return requestBody{}, err
	}
	return body, nil
}

// unknownField extracts the key from the error DisallowUnknownFields produces.
func unknownField(err error) (string, bool) {
	rest, ok := strings.CutPrefix(err.Error(), "json: unknown field ")
	if !ok {
		return "", false
	}
	field, uerr := strconv.Unquote(rest)
	if uerr != nil {
		return rest, true
	}
	return field, true
}

func (b requestBody) riskInput() (RiskInput, error) {
	required := []struct {
		field string
		v     *float64
	}{
		{"latitude", b.Latitude},
		{"longitude", b.Longitude},
		{"depth_km", b.DepthKm},
		{"days_since_last_eq", b.DaysSinceLastEq},
		{"avg_magnitude", b.AvgMagnitude},
	}
	for _, f := range required {
		if f.v == nil {
			return RiskInput{}, &ValidationError{Kind: KindInvalidInput, Field: f.field}
		}
	}

	return RiskInput{
		Latitude:        *b.Latitude,
		Longitude:       *b.Longitude,
		DepthKm:         *b.DepthKm,
		DaysSinceLastEq: truncateDays(*b.DaysSinceLastEq),
		AvgMagnitude:    *b.AvgMagnitude,
	}, nil
}

// truncateDays drops the fractional part of a day count. Values far outside
// the accepted range are pinned just past it so Validate still rejects them
// without an int overflow.
func truncateDays(d float64) int {
	switch {
	case d > MaxDays+1:
		return MaxDays + 1
	case d < -1:
		return -1
	}
	return int(math.Trunc(d))
}
