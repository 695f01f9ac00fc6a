// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks relay inputs before they reach storage: submitted
// envelopes (id, timestamp, content) and ack requests (sequence number).
//
// Validation can be narrowed to a subset of fields by passing Field*
// constants to Validate. Sentinel errors identify the failing field; the
// relay service wraps them into its own invalid-input errors.
package validators

import "context"

// Validator validates a relay input value, optionally restricted to the
// named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
