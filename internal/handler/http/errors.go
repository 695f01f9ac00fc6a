// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the HTTP layer. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoPrincipal is returned when an authorized route runs without the
	// principal the auth middleware stores in the request context.
	ErrNoPrincipal = errors.New("no authenticated device in request context")

	// ErrInvalidLimit is returned for a non-numeric limit query parameter.
	ErrInvalidLimit = errors.New("invalid `limit` query parameter")
)
