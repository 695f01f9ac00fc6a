// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncmsg

import (
	"crypto/rand"
	"fmt"
	mrand "math/rand/v2"

	"github.com/MKhiriev/go-link-sync/models"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the sync content envelope.
//
//	Content     { SyncMessage syncMessage = 2; }
//	SyncMessage { bytes padding = 8; FetchLatest fetchLatest = 12; }
//	FetchLatest { Type type = 1; }
const (
	contentSyncMessageField     protowire.Number = 2
	syncMessagePaddingField     protowire.Number = 8
	syncMessageFetchLatestField protowire.Number = 12
	fetchLatestTypeField        protowire.Number = 1
)

const maxPaddingLength = 512

// paddingFunc returns the random padding appended to every outgoing sync
// message. Replaced in tests.
var paddingFunc = randomPadding

// FetchLatest is the decoded fetch-latest field of an incoming sync message.
type FetchLatest struct {
	Type models.FetchType
}

// IncomingSyncMessage is the part of a decoded sync message this package
// understands. FetchLatest is nil when the message carries no fetch-latest
// command.
type IncomingSyncMessage struct {
	FetchLatest *FetchLatest
}

// MarshalContent encodes m as sync content ready to be placed into an
// outgoing envelope.
func (m FetchLatestMessage) MarshalContent() ([]byte, error) {
	code, err := m.WireCode()
	if err != nil {
		return nil, err
	}

	var fetchLatest []byte
	fetchLatest = protowire.AppendTag(fetchLatest, fetchLatestTypeField, protowire.VarintType)
	fetchLatest = protowire.AppendVarint(fetchLatest, uint64(code))

	padding, err := paddingFunc()
	if err != nil {
		return nil, fmt.Errorf("error generating sync message padding: %w", err)
	}

	var syncMessage []byte
	syncMessage = protowire.AppendTag(syncMessage, syncMessageFetchLatestField, protowire.BytesType)
	syncMessage = protowire.AppendBytes(syncMessage, fetchLatest)
	if len(padding) > 0 {
		syncMessage = protowire.AppendTag(syncMessage, syncMessagePaddingField, protowire.BytesType)
		syncMessage = protowire.AppendBytes(syncMessage, padding)
	}

	var content []byte
	content = protowire.AppendTag(content, contentSyncMessageField, protowire.BytesType)
	content = protowire.AppendBytes(content, syncMessage)

	return content, nil
}

// UnmarshalContent decodes sync content. Unknown fields are skipped. A
// fetch-latest command whose type is missing or not recognised decodes to
// [models.FetchTypeUnknown] without error.
func UnmarshalContent(b []byte) (IncomingSyncMessage, error) {
	var msg IncomingSyncMessage

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if num != contentSyncMessageField || typ != protowire.BytesType {
			return nil
		}
		return unmarshalSyncMessage(value, &msg)
	})
	if err != nil {
		return IncomingSyncMessage{}, err
	}

	return msg, nil
}

func unmarshalSyncMessage(b []byte, msg *IncomingSyncMessage) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if num != syncMessageFetchLatestField || typ != protowire.BytesType {
			return nil
		}

		if msg.FetchLatest == nil {
			msg.FetchLatest = &FetchLatest{Type: models.FetchTypeUnknown}
		}
		return unmarshalFetchLatest(value, msg.FetchLatest)
	})
}

func unmarshalFetchLatest(b []byte, fetchLatest *FetchLatest) error {
	return walkFields(b, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if num != fetchLatestTypeField || typ != protowire.VarintType {
			return nil
		}

		v, n := protowire.ConsumeVarint(value)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedContent, protowire.ParseError(n))
		}
		// enum values are int32 on the wire, truncation matches protobuf semantics
		fetchLatest.Type = DecodeFetchType(int32(v))
		return nil
	})
}

// walkFields calls fn for every field of the message encoded in b. For
// length-delimited fields value is the payload, for all other wire types it
// is the raw encoded value.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, value []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedContent, protowire.ParseError(n))
		}
		b = b[n:]

		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedContent, protowire.ParseError(m))
		}
		value := b[:m]
		if typ == protowire.BytesType {
			payload, k := protowire.ConsumeBytes(value)
			if k < 0 {
				return fmt.Errorf("%w: %w", ErrMalformedContent, protowire.ParseError(k))
			}
			value = payload
		}

		if err := fn(num, typ, value); err != nil {
			return err
		}
		b = b[m:]
	}

	return nil
}

func randomPadding() ([]byte, error) {
	padding := make([]byte, mrand.IntN(maxPaddingLength)+1)
	if _, err := rand.Read(padding); err != nil {
		return nil, err
	}
	return padding, nil
}
