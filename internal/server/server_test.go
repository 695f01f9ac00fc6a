// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-link-sync/internal/config"
	"github.com/MKhiriev/go-link-sync/internal/handler"
	myGRPC "github.com/MKhiriev/go-link-sync/internal/handler/grpc"
	myHTTP "github.com/MKhiriev/go-link-sync/internal/handler/http"
	"github.com/MKhiriev/go-link-sync/internal/logger"
	"github.com/MKhiriev/go-link-sync/internal/metrics"
	"github.com/MKhiriev/go-link-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func testHandlers() *handler.Handlers {
	services := &service.RelayServices{}
	m := metrics.New()
	return &handler.Handlers{
		HTTP: myHTTP.NewRelayHandler(services, m, logger.Nop()),
		GRPC: myGRPC.NewHandler(services, m, logger.Nop()),
	}
}

func TestNewServer_NoTransports(t *testing.T) {
	_, err := NewServer(testHandlers(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_EnablesConfiguredTransports(t *testing.T) {
	srv, err := NewServer(testHandlers(), config.Server{HTTPAddress: ":8080"}, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	assert.NotNil(t, s.httpServer)
	assert.Nil(t, s.gRPCServer)
	assert.Len(t, s.transports(), 1)

	srv, err = NewServer(testHandlers(), config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, logger.Nop())
	require.NoError(t, err)
	assert.Len(t, srv.(*server).transports(), 2)
}

func TestRunServer_ServesUntilCancelled(t *testing.T) {
	httpAddr := freeAddress(t)
	cfg := config.Server{HTTPAddress: httpAddr, GRPCAddress: freeAddress(t), RequestTimeout: time.Second}

	srv, err := NewServer(testHandlers(), cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	assert.Eventually(t, func() bool {
		resp, err := http.Get("http://" + httpAddr + "/metrics")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}
}

func TestRunServer_AddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv, err := NewServer(testHandlers(), config.Server{HTTPAddress: busy.Addr().String()}, logger.Nop())
	require.NoError(t, err)

	err = srv.RunServer(context.Background())
	assert.Error(t, err)
}

func TestNotifyShutdown_CancelsWithParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := NotifyShutdown(parent)
	defer stop()

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled")
	}
}
