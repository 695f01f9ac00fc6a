package grpc

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-link-sync/internal/app"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Handler is the gRPC transport of the relay.
//
// It stores references to the relay services and the structured logger so
// that method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC
// server.
type Handler struct {
	UnimplementedRelayServer

	// services provides the relay business operations.
	services *service.RelayServices

	metrics *metrics.Metrics

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided relay services.
func NewHandler(services *service.RelayServices, metrics *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		metrics:  metrics,
		logger:   logger,
	}
}

// ServerOptions returns the interceptor chain the handler expects: trace id,
// access logging, then authentication.
func (h *Handler) ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(h.withTraceID, h.withLogging, h.auth),
	}
}

// Register installs the Relay service on s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	RegisterRelayServer(s, h)
}

// Submit stores a JSON encoded envelope and returns the accepted envelope
// id.
func (h *Handler) Submit(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	log := logger.FromContext(ctx)

	principal, found := utils.GetPrincipalFromContext(ctx)
	if !found {
		return nil, status.Error(codes.Unauthenticated, app.MsgNoAuthenticatedDevice)
	}

	var envelope models.Envelope
	if err := json.Unmarshal(in.GetValue(), &envelope); err != nil {
		log.Err(err).Str("func", "*Handler.Submit").Msg("invalid envelope JSON")
		return nil, status.Error(codes.InvalidArgument, app.MsgInvalidJSON)
	}

	resp, err := h.services.RelayService.Accept(ctx, principal, envelope)
	if err != nil {
		log.Err(err).Str("func", "*Handler.Submit").Str("envelope_id", envelope.ID).Msg("envelope rejected")
		return nil, statusFromError(err)
	}
	h.metrics.EnvelopeAccepted("grpc")

	return wrapperspb.String(resp.ID), nil
}
