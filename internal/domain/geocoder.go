package domain

import "context"

// GeocodingResult contains place details returned by a geocoding provider.
type GeocodingResult struct {
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place details.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

type localeKey struct{}

// WithLocale returns a context asking geocoders to answer in loc.
func WithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, localeKey{}, loc)
}

// LocaleFrom returns the locale stored by WithLocale, if any.
func LocaleFrom(ctx context.Context) (Locale, bool) {
	loc, ok := ctx.Value(localeKey{}).(Locale)
	return loc, ok && loc != ""
}
