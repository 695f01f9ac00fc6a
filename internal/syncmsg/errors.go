// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncmsg

import "errors"

var (
	// ErrUnknownFetchType is returned when encoding a fetch type that is not
	// a transmittable member of the taxonomy, including
	// [models.FetchTypeUnknown] itself.
	ErrUnknownFetchType = errors.New("fetch type cannot be encoded")

	// ErrMalformedContent is returned when sync content bytes cannot be
	// parsed as the protobuf envelope.
	ErrMalformedContent = errors.New("malformed sync content")
)
