package domain

import "strings"

// ReferenceLocation is a catalog entry with known historical seismic attributes.
// RecordedRisk is the label published with the source dataset, if any; it is
// informational and never feeds scoring.
type ReferenceLocation struct {
	Name            string   `json:"name" yaml:"name"`
	Prefecture      string   `json:"prefecture,omitempty" yaml:"prefecture"`
	Latitude        float64  `json:"latitude" yaml:"latitude"`
	Longitude       float64  `json:"longitude" yaml:"longitude"`
	DepthKm         float64  `json:"depth_km" yaml:"depth_km"`
	AvgMagnitude    float64  `json:"avg_magnitude" yaml:"avg_magnitude"`
	DaysSinceLastEq int      `json:"days_since_last_eq" yaml:"days_since_last_eq"`
	RecordedRisk    Category `json:"recorded_risk,omitempty" yaml:"recorded_risk"`
}

// SeismicZone is a named area of known seismic activity.
type SeismicZone struct {
	Name         string   `json:"name" yaml:"name"`
	Prefecture   string   `json:"prefecture,omitempty" yaml:"prefecture"`
	Latitude     float64  `json:"latitude" yaml:"latitude"`
	Longitude    float64  `json:"longitude" yaml:"longitude"`
	RadiusKm     float64  `json:"radius_km" yaml:"radius_km"`
	Category     Category `json:"category" yaml:"category"`
	AvgMagnitude float64  `json:"avg_magnitude,omitempty" yaml:"avg_magnitude"`
}

// DefaultZoneRadiusKm is the search radius ZonesNear uses when none is given.
const DefaultZoneRadiusKm = 100.0

// Catalog is an immutable set of reference locations and seismic zones.
// It is built once and may be shared between goroutines without locking.
type Catalog struct {
	locations []ReferenceLocation
	zones     []SeismicZone
}

// NewCatalog copies the given entries into a new Catalog. Iteration order is
// preserved and decides ties in Nearest.
func NewCatalog(locations []ReferenceLocation, zones []SeismicZone) *Catalog {
	return &Catalog{
		locations: append([]ReferenceLocation(nil), locations...),
		zones:     append([]SeismicZone(nil), zones...),
	}
}

// Len returns the number of reference locations.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.locations)
}

// Locations returns a copy of the reference locations in catalog order.
func (c *Catalog) Locations() []ReferenceLocation {
	if c == nil {
		return nil
	}
	return append([]ReferenceLocation(nil), c.locations...)
}

// Zones returns a copy of the seismic zones in catalog order.
func (c *Catalog) Zones() []SeismicZone {
	if c == nil {
		return nil
	}
	return append([]SeismicZone(nil), c.zones...)
}

// Lookup finds a reference location by name, ignoring case and surrounding space.
func (c *Catalog) Lookup(name string) (ReferenceLocation, bool) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return ReferenceLocation{}, false
	}
	for _, loc := range c.locations {
		if strings.EqualFold(loc.Name, name) {
			return loc, true
		}
	}
	return ReferenceLocation{}, false
}

// Nearest returns the reference location closest to (lat, lon). Ties go to the
// entry that appears first. The boolean is false when the catalog is empty.
func (c *Catalog) Nearest(lat, lon float64) (Neighbor, bool) {
	if c.Len() == 0 {
		return Neighbor{}, false
	}

	best := -1
	var bestDistance float64
	for i, loc := range c.locations {
		d := DistanceKm(lat, lon, loc.Latitude, loc.Longitude)
		if best < 0 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return Neighbor{Location: c.locations[best], DistanceKm: bestDistance}, true
}

// Within returns every reference location within radiusKm of (lat, lon), in
// catalog order.
func (c *Catalog) Within(lat, lon, radiusKm float64) []Neighbor {
	if c == nil {
		return nil
	}
	var out []Neighbor
	for _, loc := range c.locations {
		d := DistanceKm(lat, lon, loc.Latitude, loc.Longitude)
		if d <= radiusKm {
			out = append(out, Neighbor{Location: loc, DistanceKm: d})
		}
	}
	return out
}

// ZonesNear returns the seismic zones whose centers lie within radiusKm of
// (lat, lon). A non-positive radius means DefaultZoneRadiusKm.
func (c *Catalog) ZonesNear(lat, lon, radiusKm float64) []SeismicZone {
	if c == nil {
		return nil
	}
	if radiusKm <= 0 {
		radiusKm = DefaultZoneRadiusKm
	}
	var out []SeismicZone
	for _, z := range c.zones {
		if DistanceKm(lat, lon, z.Latitude, z.Longitude) <= radiusKm {
			out = append(out, z)
		}
	}
	return out
}

// DefaultCatalog returns the built-in Japan reference dataset: twenty cities
// with historical depth, magnitude and recency, plus major seismic zones.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultLocations, defaultZones)
}

var defaultLocations = []ReferenceLocation{
	{Name: "Sapporo", Prefecture: "Hokkaido", Latitude: 43.0618, Longitude: 141.3545, DepthKm: 55.3, AvgMagnitude: 4.8, DaysSinceLastEq: 5, RecordedRisk: CategoryMedium},
	{Name: "Sendai", Prefecture: "Miyagi", Latitude: 38.2682, Longitude: 140.8694, DepthKm: 60.1, AvgMagnitude: 5.2, DaysSinceLastEq: 2, RecordedRisk: CategoryHigh},
	{Name: "Tokyo", Prefecture: "Tokyo", Latitude: 35.6895, Longitude: 139.6917, DepthKm: 80.4, AvgMagnitude: 5.0, DaysSinceLastEq: 1, RecordedRisk: CategoryMedium},
	{Name: "Yokohama", Prefecture: "Kanagawa", Latitude: 35.4437, Longitude: 139.638, DepthKm: 78.6, AvgMagnitude: 4.9, DaysSinceLastEq: 1, RecordedRisk: CategoryMedium},
	{Name: "Nagoya", Prefecture: "Aichi", Latitude: 35.1815, Longitude: 136.9066, DepthKm: 50.7, AvgMagnitude: 4.6, DaysSinceLastEq: 3, RecordedRisk: CategoryMedium},
	{Name: "Osaka", Prefecture: "Osaka", Latitude: 34.6937, Longitude: 135.5023, DepthKm: 45.2, AvgMagnitude: 4.5, DaysSinceLastEq: 4, RecordedRisk: CategoryMedium},
	{Name: "Kyoto", Prefecture: "Kyoto", Latitude: 35.0116, Longitude: 135.7681, DepthKm: 48.0, AvgMagnitude: 4.4, DaysSinceLastEq: 6, RecordedRisk: CategoryLow},
	{Name: "Kobe", Prefecture: "Hyogo", Latitude: 34.6901, Longitude: 135.1956, DepthKm: 70.2, AvgMagnitude: 5.3, DaysSinceLastEq: 2, RecordedRisk: CategoryMedium},
	{Name: "Hiroshima", Prefecture: "Hiroshima", Latitude: 34.3853, Longitude: 132.4553, DepthKm: 42.8, AvgMagnitude: 4.2, DaysSinceLastEq: 10, RecordedRisk: CategoryLow},
	{Name: "Fukuoka", Prefecture: "Fukuoka", Latitude: 33.5904, Longitude: 130.4017, DepthKm: 38.7, AvgMagnitude: 4.3, DaysSinceLastEq: 12, RecordedRisk: CategoryLow},
	{Name: "Kagoshima", Prefecture: "Kagoshima", Latitude: 31.5966, Longitude: 130.5571, DepthKm: 60.9, AvgMagnitude: 4.7, DaysSinceLastEq: 7, RecordedRisk: CategoryLow},
	{Name: "Naha", Prefecture: "Okinawa", Latitude: 26.2124, Longitude: 127.6809, DepthKm: 45.5, AvgMagnitude: 4.1, DaysSinceLastEq: 8, RecordedRisk: CategoryLow},
	{Name: "Aomori", Prefecture: "Aomori", Latitude: 40.8221, Longitude: 140.7474, DepthKm: 65.0, AvgMagnitude: 4.9, DaysSinceLastEq: 5, RecordedRisk: CategoryMedium},
	{Name: "Akita", Prefecture: "Akita", Latitude: 39.7200, Longitude: 140.1025, DepthKm: 63.3, AvgMagnitude: 4.8, DaysSinceLastEq: 6, RecordedRisk: CategoryMedium},
	{Name: "Niigata", Prefecture: "Niigata", Latitude: 37.9162, Longitude: 139.0364, DepthKm: 67.2, AvgMagnitude: 5.0, DaysSinceLastEq: 3, RecordedRisk: CategoryMedium},
	{Name: "Toyama", Prefecture: "Toyama", Latitude: 36.6953, Longitude: 137.2113, DepthKm: 72.6, AvgMagnitude: 5.1, DaysSinceLastEq: 1, RecordedRisk: CategoryMedium},
	{Name: "Nagano", Prefecture: "Nagano", Latitude: 36.6513, Longitude: 138.1810, DepthKm: 68.4, AvgMagnitude: 4.6, DaysSinceLastEq: 4, RecordedRisk: CategoryMedium},
	{Name: "Shizuoka", Prefecture: "Shizuoka", Latitude: 34.9756, Longitude: 138.3828, DepthKm: 52.7, AvgMagnitude: 4.7, DaysSinceLastEq: 3, RecordedRisk: CategoryMedium},
	{Name: "Matsue", Prefecture: "Shimane", Latitude: 35.4723, Longitude: 133.0505, DepthKm: 41.3, AvgMagnitude: 4.3, DaysSinceLastEq: 7, RecordedRisk: CategoryLow},
	{Name: "Obihiro", Prefecture: "Hokkaido", Latitude: 42.9232, Longitude: 143.1960, DepthKm: 60.5, AvgMagnitude: 4.9, DaysSinceLastEq: 0, RecordedRisk: CategoryHigh},
}

var defaultZones = []SeismicZone{
	{Name: "Nankai Trough", Latitude: 33.5, Longitude: 136.0, RadiusKm: 50, Category: CategoryHigh},
	{Name: "Tokyo Metropolitan", Prefecture: "Tokyo", Latitude: 35.6, Longitude: 139.7, RadiusKm: 35, Category: CategoryHigh},
	{Name: "Tohoku Pacific", Prefecture: "Miyagi", Latitude: 38.5, Longitude: 141.5, RadiusKm: 40, Category: CategoryMedium},
	{Name: "Kansai", Prefecture: "Osaka", Latitude: 34.7, Longitude: 135.4, RadiusKm: 30, Category: CategoryMedium},
	{Name: "Kumamoto", Prefecture: "Kumamoto", Latitude: 32.8, Longitude: 130.7, RadiusKm: 25, Category: CategoryMedium},
	{Name: "Central Honshu", Prefecture: "Nagano", Latitude: 36.2, Longitude: 138.0, RadiusKm: 35, Category: CategoryLow},
	{Name: "Northern Honshu", Prefecture: "Akita", Latitude: 39.5, Longitude: 140.5, RadiusKm: 30, Category: CategoryLow},
}
