package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/app"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	traceIDMetadataKey       = "x-trace-id"
	authorizationMetadataKey = "authorization"
)

func (h *Handler) withTraceID(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	traceID := firstMetadataValue(ctx, traceIDMetadataKey)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDMetadataKey, traceID))

	return next(l.WithContext(ctx), req)
}

func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := next(ctx, req)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// auth expects "authorization: Bearer <token>" metadata and stores the
// device principal in the context.
func (h *Handler) auth(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	log := logger.FromContext(ctx)

	tokenString, err := utils.ParseBearerToken(firstMetadataValue(ctx, authorizationMetadataKey))
	if err != nil {
		log.Err(err).Str("func", "*Handler.auth").Msg("missing or malformed authorization metadata")
		return nil, status.Error(codes.Unauthenticated, app.MsgMissingAuthorization)
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Str("func", "*Handler.auth").Msg("token rejected")
		if errors.Is(err, service.ErrTokenIsExpired) {
			return nil, status.Error(codes.Unauthenticated, service.ErrTokenIsExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, service.ErrTokenIsExpiredOrInvalid.Error())
	}

	return next(utils.WithPrincipal(ctx, token.Principal), req)
}

func firstMetadataValue(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}
