// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/utils"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-link-sync"
)

var testPrincipal = models.Principal{ACI: "aci-1", DeviceID: 2}

// newTestAdapter builds an httpRelayAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpRelayAdapter {
	t.Helper()
	adapterCfg := config.Adapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.App{TokenSignKey: testSignKey, TokenIssuer: testIssuer, TokenDuration: time.Hour}

	a, err := NewHTTPRelayAdapter(adapterCfg, appCfg, testPrincipal, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRelayAdapter)
}

// requirePrincipal checks that the request carries a valid token of the test
// device.
func requirePrincipal(t *testing.T, r *http.Request) {
	t.Helper()
	raw, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
	if !assert.NoError(t, err) {
		return
	}

	token, err := utils.ValidateAndParseJWTToken(raw, testSignKey, testIssuer)
	if assert.NoError(t, err) {
		assert.Equal(t, testPrincipal, token.Principal)
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestNewHTTPRelayAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPRelayAdapter(config.Adapter{}, config.App{}, testPrincipal, logger.Nop())
	assert.Error(t, err)
}

// ── Send ────────────────────────────────────────────────────────────────────

func TestSend_Success(t *testing.T) {
	envelope := models.Envelope{ID: "env-1", AccountACI: "aci-1", SourceDevice: 2, Timestamp: 10, Content: []byte{0x12, 0x00}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/envelopes", r.URL.Path)
		requirePrincipal(t, r)

		var got models.Envelope
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, envelope, got)

		writeJSON(t, w, http.StatusCreated, models.SubmitResponse{ID: got.ID, Seq: 7})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Send(context.Background(), envelope)

	require.NoError(t, err)
	assert.Equal(t, models.SubmitResponse{ID: "env-1", Seq: 7}, resp)
}

func TestSend_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("envelope already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Send(context.Background(), models.Envelope{ID: "env-1"})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestSend_RetriesServiceUnavailable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, http.StatusCreated, models.SubmitResponse{ID: "env-1", Seq: 1})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Send(context.Background(), models.Envelope{ID: "env-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Seq)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.Send(context.Background(), models.Envelope{ID: "env-1"})

	assert.Error(t, err)
}

// ── Pull ────────────────────────────────────────────────────────────────────

func TestPull_Success(t *testing.T) {
	envelopes := []models.Envelope{
		{Seq: 3, ID: "env-3", AccountACI: "aci-1", SourceDevice: 1, Content: []byte{1}},
		{Seq: 5, ID: "env-5", AccountACI: "aci-1", SourceDevice: 3, Content: []byte{2}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/envelopes", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		requirePrincipal(t, r)

		writeJSON(t, w, http.StatusOK, models.PullResponse{Envelopes: envelopes, Length: len(envelopes)})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Pull(context.Background(), 25)

	require.NoError(t, err)
	assert.Equal(t, envelopes, got)
}

func TestPull_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Pull(context.Background(), 10)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Ack ─────────────────────────────────────────────────────────────────────

func TestAck_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/ack", r.URL.Path)
		requirePrincipal(t, r)

		var req models.AckRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(42), req.Seq)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	assert.NoError(t, a.Ack(context.Background(), 42))
}

func TestAck_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid seq"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Ack(context.Background(), -1)

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "invalid seq")
}

// ── token ───────────────────────────────────────────────────────────────────

func TestBearerToken_Cached(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")

	first, err := a.bearerToken()
	require.NoError(t, err)
	second, err := a.bearerToken()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBearerToken_InvalidConfig(t *testing.T) {
	a, err := NewHTTPRelayAdapter(config.Adapter{HTTPAddress: "localhost:1"}, config.App{}, testPrincipal, logger.Nop())
	require.NoError(t, err)

	_, err = a.Send(context.Background(), models.Envelope{ID: "env-1"})
	assert.Error(t, err)
}
