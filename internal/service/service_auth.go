package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the JWT-backed implementation of [AuthService]. Devices of
// one account share the sign key with the relay.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is embedded into the "iss" claim and checked on parse.
	tokenIssuer string

	// tokenDuration is the lifetime of issued tokens.
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (a *authService) IssueToken(ctx context.Context, principal models.Principal) (models.Token, error) {
	log := logger.FromContext(ctx)

	if principal.ACI == "" || principal.DeviceID == 0 {
		log.Error().Str("func", "authService.IssueToken").Any("principal", principal).Msg("invalid principal provided")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, models.ErrInvalidPrincipal)
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, principal, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken verifies the signature, issuer and expiry of tokenString.
// Expired tokens are reported as [ErrTokenIsExpired], every other failure
// as [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Str("func", "authService.ParseToken").Err(err).Msg("token rejected")
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
