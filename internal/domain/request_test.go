package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"latitude":35.6762,"longitude":139.6503,"depth_km":15,"days_since_last_eq":1,"avg_magnitude":6.2}`

func TestDecodeRiskInput(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		got, err := DecodeRiskInput(strings.NewReader(validBody))
		require.NoError(t, err)
		assert.Equal(t, validInput(), got)
	})

	t.Run("explicit zeros are kept", func(t *testing.T) {
		got, err := DecodeRiskInput(strings.NewReader(`{"latitude":35,"longitude":139,"depth_km":0,"days_since_last_eq":0,"avg_magnitude":0}`))
		require.NoError(t, err)
		assert.Equal(t, RiskInput{Latitude: 35, Longitude: 139}, got)
	})

	t.Run("fractional days truncate", func(t *testing.T) {
		got, err := DecodeRiskInput(strings.NewReader(`{"latitude":35,"longitude":139,"depth_km":10,"days_since_last_eq":3.9,"avg_magnitude":5}`))
		require.NoError(t, err)
		assert.Equal(t, 3, got.DaysSinceLastEq)
	})

	t.Run("huge day counts stay out of range", func(t *testing.T) {
		got, err := DecodeRiskInput(strings.NewReader(`{"latitude":35,"longitude":139,"depth_km":10,"days_since_last_eq":1e300,"avg_magnitude":5}`))
		require.NoError(t, err)
		var verr *ValidationError
		require.ErrorAs(t, Validate(got), &verr)
		assert.Equal(t, "days_since_last_eq", verr.Field)
	})
}

func TestDecodeRiskInput_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty object", `{}`, "latitude"},
		{"only coordinates", `{"latitude":35.6,"longitude":139.7}`, "depth_km"},
		{"missing magnitude", `{"latitude":35,"longitude":139,"depth_km":10,"days_since_last_eq":1}`, "avg_magnitude"},
		{"null depth", `{"latitude":35,"longitude":139,"depth_km":null,"days_since_last_eq":1,"avg_magnitude":5}`, "depth_km"},
		{"misspelled key", `{"latitude":35,"longitude":139,"depth":10,"days_since_last_eq":1,"avg_magnitude":5}`, "depth"},
		{"locale not accepted", `{"latitude":35,"longitude":139,"depth_km":10,"days_since_last_eq":1,"avg_magnitude":5,"locale":"ja"}`, "locale"},
		{"string value", `{"latitude":"north","longitude":139,"depth_km":10,"days_since_last_eq":1,"avg_magnitude":5}`, "latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRiskInput(strings.NewReader(tt.body))
			require.ErrorIs(t, err, ErrInvalidInput)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, KindInvalidInput, verr.Kind)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDecodeRiskInput_BrokenJSON(t *testing.T) {
	_, err := DecodeRiskInput(strings.NewReader(`{"latitude": `))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestParseRawEvent(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"latitude":35.6762,"longitude":139.6503,"depth_km":15,"days_since_last_eq":1,"avg_magnitude":6.2,"locale":"ja"}`)}
		got, err := ParseRawEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, validInput(), got.RiskInput)
		assert.Equal(t, "ja", got.Locale)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{not json`)})
		assert.ErrorContains(t, err, "parse raw event")
		assert.NotErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"latitude":35.6,"longitude":139.7}`)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "depth_km", verr.Field)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"latitude":35,"longitude":139,"depth_km":10,"days_since_last_eq":1,"magnitude":5}`)})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "magnitude", verr.Field)
	})
}
