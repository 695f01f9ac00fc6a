package http

import (
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/service"
)

// Handler serves one of the two route sets. Exactly one of relay and device
// is set.
type Handler struct {
	relay  *service.RelayServices
	device *service.DeviceServices

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewRelayHandler(services *service.RelayServices, metrics *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("relay http handler created")
	return &Handler{
		relay:   services,
		metrics: metrics,
		logger:  logger,
	}
}

func NewDeviceHandler(services *service.DeviceServices, metrics *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("device http handler created")
	return &Handler{
		device:  services,
		metrics: metrics,
		logger:  logger,
	}
}
