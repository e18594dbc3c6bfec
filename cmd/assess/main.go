// Command assess scores a single set of observations and prints the
// assessment as JSON.
//
// Usage:
//
//	go run ./cmd/assess -lat 35.6762 -lon 139.6503 -depth 15 -days 1 -mag 6.2 -lang ja
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/quake-risk-service/internal/adapter/catalogfile"
	"github.com/couchcryptid/quake-risk-service/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lat := fs.String("lat", "", "latitude in degrees")
	lon := fs.String("lon", "", "longitude in degrees")
	depth := fs.String("depth", "", "focal depth in km")
	days := fs.String("days", "", "days since the last earthquake")
	mag := fs.String("mag", "", "average magnitude")
	lang := fs.String("lang", "en", "output language (en or ja)")
	catalogPath := fs.String("catalog", "", "YAML reference catalog (default: built-in)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	loc := domain.ParseLocale(*lang)

	in, err := domain.ParseRiskInput(*lat, *lon, *depth, *days, *mag)
	if err == nil {
		err = domain.Validate(in)
	}
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(stderr, "%s: %s (%s)\n", verr.Title(loc), verr.Description(loc), verr.Field)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}

	catalog := domain.DefaultCatalog()
	if *catalogPath != "" {
		catalog, err = catalogfile.Load(*catalogPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	place := domain.ResolvePlace(context.Background(), in.Latitude, in.Longitude, nil, loc, logger)
	a := domain.Assess(in, catalog, place, loc)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
