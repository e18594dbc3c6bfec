package domain

import (
	"context"
	"log/slog"
)

// Place source values recorded on predictions.
const (
	PlaceSourceGeocoder = "geocoder"
	PlaceSourceOffline  = "offline"
	PlaceSourceFallback = "fallback"
)

// Place is the display name chosen for an assessed point.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Source  string `json:"source"`
}

// ResolvePlace names a point using the geocoder when one is configured. If the
// geocoder is nil, fails, or returns nothing, the offline PlaceName is used and
// Source says which path was taken (graceful degradation). The geocoder is
// asked to answer in loc.
func ResolvePlace(ctx context.Context, lat, lon float64, geocoder Geocoder, loc Locale, logger *slog.Logger) Place {
	offline := PlaceName(lat, lon, loc)
	if geocoder == nil {
		return Place{Name: offline, Source: PlaceSourceOffline}
	}

	result, err := geocoder.ReverseGeocode(WithLocale(ctx, loc), lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return Place{Name: offline, Source: PlaceSourceFallback}
	}
	if result.PlaceName == "" {
		return Place{Name: offline, Source: PlaceSourceFallback}
	}
	return Place{
		Name:    result.PlaceName,
		Address: result.FormattedAddress,
		Source:  PlaceSourceGeocoder,
	}
}
