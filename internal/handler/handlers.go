package handler

import (
	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-link-sync/internal/handler/http"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewRelayHandlers creates the relay transports enabled in cfg.
func NewRelayHandlers(services *service.RelayServices, cfg config.Server, metrics *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new relay handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewRelayHandler(services, metrics, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, metrics, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

// NewDeviceHandlers creates the local control API of the device. The device
// has no gRPC surface.
func NewDeviceHandlers(services *service.DeviceServices, cfg config.Server, metrics *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new device handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewDeviceHandler(services, metrics, logger)}, nil
}
