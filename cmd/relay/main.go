package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/handler"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/server"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("link-sync-relay")
	cfg, err := config.GetRelayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := server.NotifyShutdown(context.Background())
	err = run(ctx, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("relay stopped with error")
	}
}

// run wires the relay and serves until ctx is done. Storage is closed on
// every return path.
func run(ctx context.Context, cfg *config.RelayConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	storages, err := store.NewRelayStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	services, err := service.NewRelayServices(storages, cfg, buildInfo, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewRelayHandlers(services, cfg.Server, metrics.New(), log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	return srv.RunServer(ctx)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = models.BuildInfoNotAvailable
	}

	if buildDate == "" {
		buildDate = models.BuildInfoNotAvailable
	}

	if buildCommit == "" {
		buildCommit = models.BuildInfoNotAvailable
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
