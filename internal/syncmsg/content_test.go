// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncmsg

import (
	"testing"

	"github.com/MKhiriev/go-link-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func withoutPadding(t *testing.T) {
	t.Helper()
	prev := paddingFunc
	paddingFunc = func() ([]byte, error) { return nil, nil }
	t.Cleanup(func() { paddingFunc = prev })
}

// content builds Content{syncMessage} around the given SyncMessage bytes.
func content(syncMessage []byte) []byte {
	b := protowire.AppendTag(nil, contentSyncMessageField, protowire.BytesType)
	return protowire.AppendBytes(b, syncMessage)
}

// fetchLatestSync builds SyncMessage{fetchLatest{type}} for a raw varint.
func fetchLatestSync(rawType uint64) []byte {
	inner := protowire.AppendTag(nil, fetchLatestTypeField, protowire.VarintType)
	inner = protowire.AppendVarint(inner, rawType)

	b := protowire.AppendTag(nil, syncMessageFetchLatestField, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func TestMarshalContent_ExactBytesWithoutPadding(t *testing.T) {
	withoutPadding(t)
	msg := NewFetchLatestMessage(threadA, models.FetchTypeStorageManifest, fixedSnapshot(1))

	got, err := msg.MarshalContent()
	require.NoError(t, err)

	// 0x12 = field 2 bytes, 0x62 = field 12 bytes, 0x08 = field 1 varint
	assert.Equal(t, []byte{0x12, 0x04, 0x62, 0x02, 0x08, 0x02}, got)
}

func TestMarshalContent_RoundTripAllTypes(t *testing.T) {
	for _, fetchType := range models.FetchTypes() {
		t.Run(fetchType.String(), func(t *testing.T) {
			msg := NewFetchLatestMessage(threadA, fetchType, fixedSnapshot(1))

			b, err := msg.MarshalContent()
			require.NoError(t, err)

			decoded, err := UnmarshalContent(b)
			require.NoError(t, err)
			require.NotNil(t, decoded.FetchLatest)
			assert.Equal(t, fetchType, decoded.FetchLatest.Type)
		})
	}
}

func TestMarshalContent_PaddingIsPresentAndBounded(t *testing.T) {
	msg := NewFetchLatestMessage(threadA, models.FetchTypeLocalProfile, fixedSnapshot(1))

	b, err := msg.MarshalContent()
	require.NoError(t, err)

	var paddingLen int
	err = walkFields(b, func(_ protowire.Number, _ protowire.Type, syncMessage []byte) error {
		return walkFields(syncMessage, func(num protowire.Number, _ protowire.Type, value []byte) error {
			if num == syncMessagePaddingField {
				paddingLen = len(value)
			}
			return nil
		})
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, paddingLen, 1)
	assert.LessOrEqual(t, paddingLen, maxPaddingLength)
}

func TestUnmarshalContent_NewerCodeDegradesToUnknown(t *testing.T) {
	decoded, err := UnmarshalContent(content(fetchLatestSync(42)))

	require.NoError(t, err)
	require.NotNil(t, decoded.FetchLatest)
	assert.Equal(t, models.FetchTypeUnknown, decoded.FetchLatest.Type)
}

func TestUnmarshalContent_MissingTypeIsUnknown(t *testing.T) {
	b := protowire.AppendTag(nil, syncMessageFetchLatestField, protowire.BytesType)
	b = protowire.AppendBytes(b, nil)

	decoded, err := UnmarshalContent(content(b))

	require.NoError(t, err)
	require.NotNil(t, decoded.FetchLatest)
	assert.Equal(t, models.FetchTypeUnknown, decoded.FetchLatest.Type)
}

func TestUnmarshalContent_SkipsUnknownFields(t *testing.T) {
	syncMessage := protowire.AppendTag(nil, 99, protowire.VarintType)
	syncMessage = protowire.AppendVarint(syncMessage, 7)
	syncMessage = append(syncMessage, fetchLatestSync(3)...)
	syncMessage = protowire.AppendTag(syncMessage, 100, protowire.Fixed64Type)
	syncMessage = protowire.AppendFixed64(syncMessage, 1)

	b := protowire.AppendTag(nil, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("data message"))
	b = append(b, content(syncMessage)...)

	decoded, err := UnmarshalContent(b)

	require.NoError(t, err)
	require.NotNil(t, decoded.FetchLatest)
	assert.Equal(t, models.FetchTypeSubscriptionStatus, decoded.FetchLatest.Type)
}

func TestUnmarshalContent_NoFetchLatest(t *testing.T) {
	syncMessage := protowire.AppendTag(nil, syncMessagePaddingField, protowire.BytesType)
	syncMessage = protowire.AppendBytes(syncMessage, []byte{1, 2, 3})

	decoded, err := UnmarshalContent(content(syncMessage))

	require.NoError(t, err)
	assert.Nil(t, decoded.FetchLatest)
}

func TestUnmarshalContent_Empty(t *testing.T) {
	decoded, err := UnmarshalContent(nil)

	require.NoError(t, err)
	assert.Nil(t, decoded.FetchLatest)
}

func TestUnmarshalContent_Truncated(t *testing.T) {
	withoutPadding(t)
	msg := NewFetchLatestMessage(threadA, models.FetchTypeLocalProfile, fixedSnapshot(1))
	b, err := msg.MarshalContent()
	require.NoError(t, err)

	_, err = UnmarshalContent(b[:len(b)-2])
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestUnmarshalContent_Garbage(t *testing.T) {
	_, err := UnmarshalContent([]byte{0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrMalformedContent)
}
