// Command genmock generates the test fixtures from the built-in reference
// catalog: the mock assessment requests used by the pipeline and integration
// suites, and the YAML catalog accepted by CATALOG_PATH. It scores requests
// with the domain package so the fixture matches real engine behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -requests-out data/mock/assessment_requests.json \
//	  -catalog-out data/catalog.yaml
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"gopkg.in/yaml.v3"
)

type mockRow struct {
	Name                  string           `json:"name"`
	Request               domain.RiskInput `json:"request"`
	ExpectedCombinedScore float64          `json:"expected_combined_score"`
	ExpectedNearest       string           `json:"expected_nearest"`
	ExpectRejected        bool             `json:"expect_rejected"`
}

type catalogDoc struct {
	Locations []domain.ReferenceLocation `yaml:"locations"`
	Zones     []domain.SeismicZone       `yaml:"zones"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for the mock assessment request fixture")
	catalogOut := flag.String("catalog-out", "", "output path for the YAML catalog")
	flag.Parse()

	if *requestsOut == "" && *catalogOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out and/or -catalog-out")
	}

	catalog := domain.DefaultCatalog()

	if *requestsOut != "" {
		rows := buildRows(catalog)
		if err := writeJSON(*requestsOut, rows); err != nil {
			return err
		}
		fmt.Printf("Wrote %d requests to %s\n", len(rows), *requestsOut)
	}

	if *catalogOut != "" {
		if err := writeYAML(*catalogOut, catalogDoc{Locations: catalog.Locations(), Zones: catalog.Zones()}); err != nil {
			return err
		}
		fmt.Printf("Wrote %d locations and %d zones to %s\n", catalog.Len(), len(catalog.Zones()), *catalogOut)
	}
	return nil
}

// buildRows turns every catalog city into a request at its own coordinates
// using its stored observations.
func buildRows(catalog *domain.Catalog) []mockRow {
	locations := catalog.Locations()
	rows := make([]mockRow, 0, len(locations))
	for _, l := range locations {
		in := domain.RiskInput{
			Latitude:        l.Latitude,
			Longitude:       l.Longitude,
			DepthKm:         l.DepthKm,
			DaysSinceLastEq: l.DaysSinceLastEq,
			AvgMagnitude:    l.AvgMagnitude,
		}
		rows = append(rows, mockRow{
			Name:                  l.Name,
			Request:               in,
			ExpectedCombinedScore: domain.Evaluate(in, domain.LocaleEnglish).Score,
			ExpectedNearest:       l.Name,
			ExpectRejected:        domain.Validate(in) != nil,
		})
	}
	return rows
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func writeYAML(path string, v any) error {
	var buf bytes.Buffer
	buf.WriteString("# Reference catalog for CATALOG_PATH. Mirrors the built-in dataset.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
