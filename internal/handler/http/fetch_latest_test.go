package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/MKhiriev/go-link-sync/internal/store"
	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRequestFetch_Accepted(t *testing.T) {
	tests := []struct {
		path string
		want models.FetchType
	}{
		{"/api/fetch-latest/local_profile", models.FetchTypeLocalProfile},
		{"/api/fetch-latest/storage-manifest", models.FetchTypeStorageManifest},
		{"/api/fetch-latest/subscription_status", models.FetchTypeSubscriptionStatus},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h, fetch := newTestDeviceHandler(t)
			fetch.EXPECT().RequestFetch(gomock.Any(), tt.want).Return(models.OutboxEntry{ID: "entry-1", FetchType: tt.want}, nil)

			rr := serve(h, http.MethodPost, tt.path, "", nil)

			require.Equal(t, http.StatusAccepted, rr.Code)
			assert.Contains(t, rr.Body.String(), `"id":"entry-1"`)
		})
	}
}

func TestRequestFetch_UnknownName(t *testing.T) {
	for _, name := range []string{"unknown", "everything"} {
		h, _ := newTestDeviceHandler(t)

		rr := serve(h, http.MethodPost, "/api/fetch-latest/"+name, "", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code, name)
	}
}

func TestRequestFetch_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"throttled", fmt.Errorf("%w: local_profile", service.ErrFetchThrottled), http.StatusTooManyRequests},
		{"not registered", service.ErrAccountNotRegistered, http.StatusConflict},
		{"no thread", store.ErrThreadNotFound, http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fetch := newTestDeviceHandler(t)
			fetch.EXPECT().RequestFetch(gomock.Any(), models.FetchTypeLocalProfile).Return(models.OutboxEntry{}, tt.err)

			rr := serve(h, http.MethodPost, "/api/fetch-latest/local_profile", "", nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRequestAllFetches(t *testing.T) {
	entries := []models.OutboxEntry{{ID: "a"}, {ID: "b"}}

	tests := []struct {
		name       string
		entries    []models.OutboxEntry
		err        error
		wantStatus int
	}{
		{"all queued", entries, nil, http.StatusAccepted},
		{"some failed", entries[:1], service.ErrFetchThrottled, http.StatusMultiStatus},
		{"none queued", nil, service.ErrAccountNotRegistered, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fetch := newTestDeviceHandler(t)
			fetch.EXPECT().RequestAll(gomock.Any()).Return(tt.entries, tt.err)

			rr := serve(h, http.MethodPost, "/api/fetch-latest/", "", nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
