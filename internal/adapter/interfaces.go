// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer client the device daemon uses
// to talk to the relay.
//
// The primary abstraction is [RelayAdapter], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRelayAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-link-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/relay_adapter_mock.go -package=mock

// RelayAdapter defines transport-agnostic communication with the relay.
// Implementations are responsible for serialisation, authentication
// and mapping transport-level errors to the sentinel values defined in this
// package.
type RelayAdapter interface {
	// Send submits one envelope. A relay that already stored an envelope with
	// the same id answers with [ErrConflict].
	Send(ctx context.Context, envelope models.Envelope) (models.SubmitResponse, error)

	// Pull fetches up to limit envelopes addressed to this device that it has
	// not acknowledged yet, in relay order.
	Pull(ctx context.Context, limit int) ([]models.Envelope, error)

	// Ack moves this device's cursor up to and including seq.
	Ack(ctx context.Context, seq int64) error
}
