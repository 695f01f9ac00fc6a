// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncmsg

import (
	"fmt"

	"github.com/MKhiriev/go-link-sync/models"
)

// Wire codes of SyncMessage.FetchLatest.Type. Codes are permanent: never
// renumber or reuse one, append new kinds at the end.
const (
	wireCodeUnknown            int32 = 0
	wireCodeLocalProfile       int32 = 1
	wireCodeStorageManifest    int32 = 2
	wireCodeSubscriptionStatus int32 = 3
)

// EncodeFetchType maps a fetch type to its wire code. Encoding
// [models.FetchTypeUnknown] or a value outside the taxonomy is a caller
// error and fails with [ErrUnknownFetchType].
func EncodeFetchType(t models.FetchType) (int32, error) {
	switch t {
	case models.FetchTypeLocalProfile:
		return wireCodeLocalProfile, nil
	case models.FetchTypeStorageManifest:
		return wireCodeStorageManifest, nil
	case models.FetchTypeSubscriptionStatus:
		return wireCodeSubscriptionStatus, nil
	default:
		return wireCodeUnknown, fmt.Errorf("%w: %d", ErrUnknownFetchType, int32(t))
	}
}

// DecodeFetchType maps any wire code to a fetch type. Codes this build does
// not know, including ones defined by newer peers, decode to
// [models.FetchTypeUnknown].
func DecodeFetchType(code int32) models.FetchType {
	switch code {
	case wireCodeLocalProfile:
		return models.FetchTypeLocalProfile
	case wireCodeStorageManifest:
		return models.FetchTypeStorageManifest
	case wireCodeSubscriptionStatus:
		return models.FetchTypeSubscriptionStatus
	default:
		return models.FetchTypeUnknown
	}
}
