// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncmsg

import (
	"github.com/MKhiriev/go-link-sync/models"
)

// Snapshot is the read-only transaction context a message is built under.
// The message records the moment the snapshot was taken and never writes
// through it.
type Snapshot interface {
	// Timestamp returns the snapshot moment in unix milliseconds.
	Timestamp() uint64
}

// FetchLatestMessage asks the other devices of the account to refresh one
// slice of shared state. The value is immutable; build a new one for any
// change.
//
// The zero value carries no intent and fails to encode.
type FetchLatestMessage struct {
	fetchType   models.FetchType
	destination models.ThreadReference
	timestamp   uint64
}

// NewFetchLatestMessage is the only way to build a [FetchLatestMessage].
// The destination and snapshot are expected to come from an open read
// transaction of the account store; their validity is checked there.
// snapshot must be non-nil.
func NewFetchLatestMessage(destination models.ThreadReference, fetchType models.FetchType, snapshot Snapshot) FetchLatestMessage {
	return FetchLatestMessage{
		fetchType:   fetchType,
		destination: destination,
		timestamp:   snapshot.Timestamp(),
	}
}

// FetchType returns the requested resource kind.
func (m FetchLatestMessage) FetchType() models.FetchType {
	return m.fetchType
}

// Destination returns the thread the message is addressed to.
func (m FetchLatestMessage) Destination() models.ThreadReference {
	return m.destination
}

// Timestamp returns the snapshot moment the message was built at, in unix
// milliseconds. The outgoing envelope uses it as the sender timestamp.
func (m FetchLatestMessage) Timestamp() uint64 {
	return m.timestamp
}

// WireCode returns the encoded fetch type ready to be embedded into the
// outgoing envelope.
func (m FetchLatestMessage) WireCode() (int32, error) {
	return EncodeFetchType(m.fetchType)
}
