package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/adapter"
	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/handler"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/server"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/internal/workers"
	"github.com/MKhiriev/go-link-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("link-sync-device")
	cfg, err := config.GetDeviceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	ctx, stop := server.NotifyShutdown(context.Background())
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("device stopped with error")
	}
	log.Info().Msg("device stopped")
}

// run wires the device and blocks until ctx is done. Storage is closed on
// every return path.
func run(ctx context.Context, cfg *config.DeviceConfig, log *logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	storages, err := store.NewDeviceStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	thread, err := storages.AccountRepository.SaveLocalAccount(ctx, localAccount(cfg.Account))
	if err != nil {
		return fmt.Errorf("error saving local account: %w", err)
	}
	log.Info().Str("thread_id", thread.ThreadID).Msg("local account ready")

	principal := models.Principal{ACI: cfg.Account.ACI, DeviceID: cfg.Account.DeviceID}
	relay, err := adapter.NewHTTPRelayAdapter(cfg.Adapter, cfg.App, principal, log)
	if err != nil {
		return fmt.Errorf("error creating relay adapter: %w", err)
	}

	m := metrics.New()
	services, err := service.NewDeviceServices(storages, relay, nil, cfg, m, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	// the control API is optional
	var srv server.Server
	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewDeviceHandlers(services, cfg.Server, m, log)
		if err != nil {
			return fmt.Errorf("error creating handlers: %w", err)
		}

		if srv, err = server.NewServer(handlers, cfg.Server, log); err != nil {
			return fmt.Errorf("error creating server: %w", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		workers.NewDeviceWorkers(services, cfg.Workers, cfg.Fetch, log).Run(ctx)
	}()

	if srv != nil {
		err = srv.RunServer(ctx)
		// a failed control server stops the workers too
		cancel()
	}

	wg.Wait()
	if err != nil {
		return fmt.Errorf("control server: %w", err)
	}
	return nil
}

func localAccount(cfg config.Account) models.AccountState {
	now := time.Now().UTC()
	return models.AccountState{
		ACI:          cfg.ACI,
		E164:         cfg.E164,
		DeviceID:     cfg.DeviceID,
		DeviceName:   cfg.DeviceName,
		State:        models.Registered,
		RegisteredAt: &now,
	}
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
