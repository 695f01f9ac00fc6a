// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ThreadReference addresses the conversation a sync message is sent on.
// Sync messages always travel on the account's note-to-self thread, so the
// recipient is the local account itself.
type ThreadReference struct {
	// ThreadID is the locally unique identifier of the thread.
	ThreadID string `json:"thread_id"`

	// RecipientACI is the account the thread points at.
	RecipientACI string `json:"recipient_aci"`
}
