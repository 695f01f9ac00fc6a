// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// relay and device transports.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or gRPC status messages to describe the outcome of an
// operation.
package app

const (
	// MsgInvalidJSON is returned when a request body or gRPC payload cannot
	// be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgMissingAuthorization is returned when no bearer token was sent or it
	// could not be parsed out of the header or metadata.
	MsgMissingAuthorization = "missing or malformed authorization"

	// MsgNoAuthenticatedDevice is returned when a handler behind the auth
	// middleware finds no principal in the request context.
	MsgNoAuthenticatedDevice = "no authenticated device"

	// MsgPullFailed is returned when pending envelopes could not be read.
	MsgPullFailed = "error pulling envelopes"
)
