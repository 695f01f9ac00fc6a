package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/go-resty/resty/v2"
)

// Relay routes.
const (
	envelopesPath = "/api/sync/envelopes"
	ackPath       = "/api/sync/ack"
)

// tokenRefreshMargin is how long before expiry a cached token is replaced.
const tokenRefreshMargin = 30 * time.Second

type httpRelayAdapter struct {
	client *utils.HTTPClient

	principal models.Principal
	app       config.App

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	logger *logger.Logger
}

// NewHTTPRelayAdapter constructs an HTTP/REST implementation of
// [RelayAdapter] for the device identified by principal. Requests carry a
// bearer token minted from appCfg's shared sign key; the token is cached
// until shortly before it expires.
//
// Transient relay failures (502, 503, 504) are retried twice.
func NewHTTPRelayAdapter(adapterCfg config.Adapter, appCfg config.App, principal models.Principal, logger *logger.Logger) (RelayAdapter, error) {
	if adapterCfg.HTTPAddress == "" {
		return nil, fmt.Errorf("invalid adapter http address: empty address")
	}

	client := utils.NewHTTPClient(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)
	client.
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil || resp == nil {
				return false
			}
			switch resp.StatusCode() {
			case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return true
			}
			return false
		})

	return &httpRelayAdapter{
		client:    client,
		principal: principal,
		app:       appCfg,
		logger:    logger,
	}, nil
}

// Send implements [RelayAdapter]. It POSTs the envelope to
// POST /api/sync/envelopes.
func (h *httpRelayAdapter) Send(ctx context.Context, envelope models.Envelope) (models.SubmitResponse, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.SubmitResponse{}, err
	}

	var submitted models.SubmitResponse
	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(envelope).
		SetResult(&submitted).
		Post(envelopesPath)
	if err != nil {
		return models.SubmitResponse{}, fmt.Errorf("send envelope request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SubmitResponse{}, err
	}

	return submitted, nil
}

// Pull implements [RelayAdapter]. It calls GET /api/sync/envelopes?limit=N.
func (h *httpRelayAdapter) Pull(ctx context.Context, limit int) ([]models.Envelope, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var pulled models.PullResponse
	resp, err := req.
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&pulled).
		Get(envelopesPath)
	if err != nil {
		return nil, fmt.Errorf("pull envelopes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return pulled.Envelopes, nil
}

// Ack implements [RelayAdapter]. It POSTs the sequence to POST /api/sync/ack.
func (h *httpRelayAdapter) Ack(ctx context.Context, seq int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.AckRequest{Seq: seq}).
		Post(ackPath)
	if err != nil {
		return fmt.Errorf("ack request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRelayAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token, err := h.bearerToken()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*httpRelayAdapter.authedRequest").Msg("error minting device token")
		return nil, fmt.Errorf("mint device token: %w", err)
	}

	return h.client.R().
		SetContext(ctx).
		SetAuthToken(token), nil
}

func (h *httpRelayAdapter) bearerToken() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.token != "" && time.Until(h.expiresAt) > tokenRefreshMargin {
		return h.token, nil
	}

	token, err := utils.GenerateJWTToken(h.app.TokenIssuer, h.principal, h.app.TokenDuration, h.app.TokenSignKey)
	if err != nil {
		return "", err
	}

	h.token = token.SignedString
	h.expiresAt = time.Now().Add(h.app.TokenDuration)
	return h.token, nil
}
