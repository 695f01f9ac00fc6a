package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const submittedEnvelope = `{"id":"01928f3e-6c1a-7b2d-9e4f-123456789abc","timestamp":1700000000000,"content":"EgRiAggB"}`

func TestSubmitEnvelope_Created(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().
		Accept(gomock.Any(), testPrincipal, models.Envelope{
			ID:        "01928f3e-6c1a-7b2d-9e4f-123456789abc",
			Timestamp: 1700000000000,
			Content:   []byte{0x12, 0x04, 0x62, 0x02, 0x08, 0x01},
		}).
		Return(models.SubmitResponse{ID: "01928f3e-6c1a-7b2d-9e4f-123456789abc", Seq: 5}, nil)

	rr := serve(h, http.MethodPost, "/api/sync/envelopes", submittedEnvelope, bearer)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":"01928f3e-6c1a-7b2d-9e4f-123456789abc","seq":5}`, rr.Body.String())
}

func TestSubmitEnvelope_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate", store.ErrEnvelopeExists, http.StatusConflict},
		{"invalid", service.ErrInvalidEnvelope, http.StatusBadRequest},
		{"foreign account", service.ErrEnvelopeAccountMismatch, http.StatusForbidden},
		{"database down", store.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestRelayHandler(t)
			m.expectValidToken()
			m.relay.EXPECT().Accept(gomock.Any(), testPrincipal, gomock.Any()).Return(models.SubmitResponse{}, tt.err)

			rr := serve(h, http.MethodPost, "/api/sync/envelopes", submittedEnvelope, bearer)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestSubmitEnvelope_InvalidJSON(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()

	rr := serve(h, http.MethodPost, "/api/sync/envelopes", `{"id":`, bearer)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitEnvelope_Unauthorized(t *testing.T) {
	h, _ := newTestRelayHandler(t)

	rr := serve(h, http.MethodPost, "/api/sync/envelopes", submittedEnvelope, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPullEnvelopes_OK(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().Pull(gomock.Any(), testPrincipal, 10).Return([]models.Envelope{
		{Seq: 1, ID: "a", AccountACI: "aci-1", SourceDevice: 1, Timestamp: 1, Content: []byte{1}},
		{Seq: 2, ID: "b", AccountACI: "aci-1", SourceDevice: 3, Timestamp: 2, Content: []byte{2}},
	}, nil)

	rr := serve(h, http.MethodGet, "/api/sync/envelopes?limit=10", "", bearer)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp models.PullResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Length)
	assert.Equal(t, int64(2), resp.Envelopes[1].Seq)
}

func TestPullEnvelopes_EmptyIsArray(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().Pull(gomock.Any(), testPrincipal, 0).Return(nil, nil)

	rr := serve(h, http.MethodGet, "/api/sync/envelopes", "", bearer)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"envelopes":[],"length":0}`, rr.Body.String())
}

func TestPullEnvelopes_InvalidLimit(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()

	rr := serve(h, http.MethodGet, "/api/sync/envelopes?limit=ten", "", bearer)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPullEnvelopes_GzipWhenAccepted(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().Pull(gomock.Any(), testPrincipal, 0).Return(nil, nil)

	headers := map[string]string{"Authorization": "Bearer good", "Accept-Encoding": "gzip"}
	rr := serve(h, http.MethodGet, "/api/sync/envelopes", "", headers)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestAckEnvelopes_NoContent(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().Ack(gomock.Any(), testPrincipal, int64(12)).Return(nil)

	rr := serve(h, http.MethodPost, "/api/sync/ack", `{"seq":12}`, bearer)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAckEnvelopes_InvalidSequence(t *testing.T) {
	h, m := newTestRelayHandler(t)
	m.expectValidToken()
	m.relay.EXPECT().Ack(gomock.Any(), testPrincipal, int64(0)).Return(service.ErrInvalidAckSequence)

	rr := serve(h, http.MethodPost, "/api/sync/ack", `{"seq":0}`, bearer)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEnvelopeHandlers_NoPrincipal(t *testing.T) {
	h, _ := newTestRelayHandler(t)

	for name, handler := range map[string]http.HandlerFunc{
		"submit": h.submitEnvelope,
		"pull":   h.pullEnvelopes,
		"ack":    h.ackEnvelopes,
	} {
		t.Run(name, func(t *testing.T) {
			req := injectNopLogger(httptest.NewRequest(http.MethodPost, "/", nil))
			rr := httptest.NewRecorder()
			handler(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}
