// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Envelope is the unit the relay stores and fans out to the other devices
// of an account. Content is opaque to the relay.
type Envelope struct {
	// Seq is the relay-assigned ordering key. Zero until stored.
	Seq int64 `json:"seq,omitempty"`

	// ID is the sender-assigned identifier used for idempotent submission.
	ID string `json:"id"`

	// AccountACI is the account whose devices receive the envelope.
	AccountACI string `json:"account_aci"`

	// SourceDevice is the device that sent the envelope. It never receives
	// its own envelopes back.
	SourceDevice uint32 `json:"source_device"`

	// Timestamp is the sender timestamp in unix milliseconds.
	Timestamp uint64 `json:"timestamp"`

	// Content is the encoded sync content.
	Content []byte `json:"content"`

	// ReceivedAt is stamped by the relay.
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

// PullResponse is returned by the relay to a pulling device.
type PullResponse struct {
	Envelopes []Envelope `json:"envelopes"`
	Length    int        `json:"length"`
}

// AckRequest moves the device cursor up to and including Seq.
type AckRequest struct {
	Seq int64 `json:"seq"`
}

// SubmitResponse acknowledges an accepted envelope.
type SubmitResponse struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`
}
