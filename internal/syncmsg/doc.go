// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncmsg builds and encodes the fetch-latest sync command: the
// message one linked device sends to the others when a specific slice of
// shared account state has to be refreshed.
//
// A [FetchLatestMessage] can only be obtained from [NewFetchLatestMessage],
// which requires a destination thread, an explicit [models.FetchType] and the
// read-only [Snapshot] the request is built under. [EncodeFetchType] and
// [DecodeFetchType] map the taxonomy to its wire codes; decoding is total
// and degrades codes from newer peers to [models.FetchTypeUnknown].
//
// [FetchLatestMessage.MarshalContent] and [UnmarshalContent] embed the wire
// code into the protobuf sync content envelope using protowire directly.
package syncmsg
