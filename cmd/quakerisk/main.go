package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/quake-risk-service/internal/adapter/catalogfile"
	httpadapter "github.com/couchcryptid/quake-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-risk-service/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-risk-service/internal/config"
	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/couchcryptid/quake-risk-service/internal/observability"
	"github.com/couchcryptid/quake-risk-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"golang.org/x/sync/errgroup"
)

// alwaysReady is the readiness check when no pipeline is running: the API
// needs nothing beyond the in-memory catalog.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	metrics.CatalogLocations.Set(float64(catalog.Len()))
	logger.Info("reference catalog loaded", "locations", catalog.Len(), "zones", len(catalog.Zones()), "path", cfg.CatalogPath)

	defaultLocale := domain.ParseLocale(cfg.DefaultLocale)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics,
			mapbox.WithRateLimit(cfg.MapboxRateLimit),
			mapbox.WithLanguage(string(defaultLocale)))
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled",
			"cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout, "rate_limit", cfg.MapboxRateLimit)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	apiOpts := []httpadapter.APIOption{}
	if geocoder != nil {
		apiOpts = append(apiOpts, httpadapter.WithGeocoder(geocoder))
	}

	var (
		p      *pipeline.Pipeline
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		ready  sharedobs.ReadinessChecker = alwaysReady{}
	)
	if cfg.PipelineEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(catalog, geocoder, defaultLocale, logger, metrics)
		p = pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		ready = p
		apiOpts = append(apiOpts, httpadapter.WithSink(writer))
		logger.Info("assessment pipeline enabled",
			"source_topic", cfg.KafkaSourceTopic, "sink_topic", cfg.KafkaSinkTopic, "batch_size", cfg.BatchSize)
	}

	api := httpadapter.NewAPI(catalog, defaultLocale, logger, metrics, apiOpts...)
	srv := httpadapter.NewServer(cfg.HTTPAddr, api, ready, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if p != nil {
		g.Go(func() error {
			return p.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()

	if reader != nil {
		if cerr := reader.Close(); cerr != nil {
			logger.Error("kafka reader close error", "error", cerr)
		}
	}
	if writer != nil {
		if cerr := writer.Close(); cerr != nil {
			logger.Error("kafka writer close error", "error", cerr)
		}
	}
	return err
}

func loadCatalog(cfg *config.Config) (*domain.Catalog, error) {
	if cfg.CatalogPath == "" {
		return domain.DefaultCatalog(), nil
	}
	return catalogfile.Load(cfg.CatalogPath)
}
