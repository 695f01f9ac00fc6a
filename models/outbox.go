// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OutboxEntry is an encoded sync message waiting for delivery to the relay.
// Delivery and retry state lives here, never in the message value itself.
type OutboxEntry struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	FetchType FetchType `json:"fetch_type"`
	Timestamp uint64    `json:"timestamp"`
	Content   []byte    `json:"content"`
	Attempts  int       `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// SentAt is nil until the relay accepted the entry.
	SentAt *time.Time `json:"sent_at,omitempty"`
}
