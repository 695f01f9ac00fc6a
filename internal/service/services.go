package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-link-sync/internal/adapter"
	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/internal/validators"
	"github.com/MKhiriev/go-link-sync/models"
)

// DeviceServices groups the services of the device daemon.
type DeviceServices struct {
	FetchLatestService FetchLatestService
	DeliveryService    DeliveryService
	InboxService       InboxService
}

// NewDeviceServices wires the device services to their storages and the
// relay adapter. A nil dispatcher falls back to [NewLoggingDispatcher].
func NewDeviceServices(storages *store.DeviceStorages, relay adapter.RelayAdapter, dispatcher Dispatcher, cfg *config.DeviceConfig, metrics *metrics.Metrics, logger *logger.Logger) (*DeviceServices, error) {
	if storages == nil || relay == nil {
		return nil, errors.New("device services: storages and relay adapter are required")
	}
	if dispatcher == nil {
		dispatcher = NewLoggingDispatcher(logger)
	}

	principal := models.Principal{ACI: cfg.Account.ACI, DeviceID: cfg.Account.DeviceID}

	return &DeviceServices{
		FetchLatestService: NewFetchLatestService(storages.Snapshots, storages.OutboxRepository, cfg.Fetch, metrics, logger),
		DeliveryService:    NewDeliveryService(storages.OutboxRepository, relay, principal, cfg.Workers, metrics, logger),
		InboxService:       NewInboxService(relay, dispatcher, cfg.Workers, metrics, logger),
	}, nil
}

// RelayServices groups the services of the relay.
type RelayServices struct {
	RelayService   RelayService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewRelayServices(storages *store.RelayStorages, cfg *config.RelayConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*RelayServices, error) {
	if storages == nil {
		return nil, errors.New("relay services: storages are required")
	}

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &RelayServices{
		RelayService:   NewRelayService(storages.RelayRepository, validators.NewEnvelopeValidator(), logger),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfoService,
	}, nil
}
