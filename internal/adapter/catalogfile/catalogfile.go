// Package catalogfile loads a reference catalog from a YAML document.
package catalogfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of a catalog file.
type document struct {
	Locations []domain.ReferenceLocation `yaml:"locations"`
	Zones     []domain.SeismicZone       `yaml:"zones"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document. Unknown keys are rejected so that typos
// do not silently drop fields.
func Parse(r io.Reader) (*domain.Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return domain.NewCatalog(doc.Locations, doc.Zones), nil
}

func validate(doc document) error {
	if len(doc.Locations) == 0 {
		return errors.New("at least one location is required")
	}

	seen := make(map[string]bool, len(doc.Locations))
	for i, l := range doc.Locations {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return fmt.Errorf("location %d: name is required", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("location %q: duplicate name", name)
		}
		seen[key] = true

		if err := checkCoordinates(l.Latitude, l.Longitude); err != nil {
			return fmt.Errorf("location %q: %w", name, err)
		}
		if !finite(l.DepthKm, l.AvgMagnitude) || l.DepthKm < 0 || l.AvgMagnitude < 0 || l.DaysSinceLastEq < 0 {
			return fmt.Errorf("location %q: depth, magnitude and days must be non-negative", name)
		}
		if l.RecordedRisk != "" && !l.RecordedRisk.Valid() {
			return fmt.Errorf("location %q: unknown recorded_risk %q", name, l.RecordedRisk)
		}
	}

	for i, z := range doc.Zones {
		if strings.TrimSpace(z.Name) == "" {
			return fmt.Errorf("zone %d: name is required", i)
		}
		if err := checkCoordinates(z.Latitude, z.Longitude); err != nil {
			return fmt.Errorf("zone %q: %w", z.Name, err)
		}
		if !finite(z.RadiusKm) || z.RadiusKm <= 0 {
			return fmt.Errorf("zone %q: radius_km must be positive", z.Name)
		}
		if !z.Category.Valid() {
			return fmt.Errorf("zone %q: unknown category %q", z.Name, z.Category)
		}
	}
	return nil
}

// checkCoordinates accepts any point on the globe. Entries outside the
// assessment geofence (such as Naha) are still useful as references.
func checkCoordinates(lat, lon float64) error {
	if !finite(lat, lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fmt.Errorf("invalid coordinates %v,%v", lat, lon)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
