package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(duration time.Duration) AuthService {
	return NewAuthService(config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-link-sync",
		TokenDuration: duration,
	}, logger.Nop())
}

func TestAuthService_IssueAndParse(t *testing.T) {
	svc := newTestAuthService(time.Hour)
	principal := models.Principal{ACI: "aci-1", DeviceID: 2}

	token, err := svc.IssueToken(context.Background(), principal)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, principal, parsed.Principal)
}

func TestAuthService_IssueToken_InvalidPrincipal(t *testing.T) {
	svc := newTestAuthService(time.Hour)

	tests := []struct {
		name      string
		principal models.Principal
	}{
		{"empty aci", models.Principal{DeviceID: 1}},
		{"zero device", models.Principal{ACI: "aci-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.IssueToken(context.Background(), tt.principal)
			assert.ErrorIs(t, err, ErrTokenCreationFailed)
			assert.ErrorIs(t, err, models.ErrInvalidPrincipal)
		})
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(-time.Minute)

	token, err := svc.IssueToken(context.Background(), models.Principal{ACI: "aci-1", DeviceID: 2})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	issuer := newTestAuthService(time.Hour)
	token, err := issuer.IssueToken(context.Background(), models.Principal{ACI: "aci-1", DeviceID: 2})
	require.NoError(t, err)

	verifier := NewAuthService(config.App{
		TokenSignKey:  "other-key",
		TokenIssuer:   "go-link-sync",
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err = verifier.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	_, err := newTestAuthService(time.Hour).ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
