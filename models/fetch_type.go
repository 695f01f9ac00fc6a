// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"strings"
)

// FetchType identifies the slice of account state a linked device is asked
// to refresh. The set is closed and add-only: a new resource kind appends a
// new member, existing members keep their wire identity forever.
type FetchType int32

const (
	// FetchTypeUnknown is the decode-time fallback for codes this build does
	// not recognise. It is never the intent of an outgoing request.
	FetchTypeUnknown FetchType = iota

	// FetchTypeLocalProfile asks the recipient to refetch the account's own
	// profile.
	FetchTypeLocalProfile

	// FetchTypeStorageManifest asks the recipient to refetch the latest
	// storage service manifest.
	FetchTypeStorageManifest

	// FetchTypeSubscriptionStatus asks the recipient to refresh the
	// account's subscription status.
	FetchTypeSubscriptionStatus
)

// ErrUnknownFetchTypeName is returned by ParseFetchType for names that do
// not identify a transmittable fetch type.
var ErrUnknownFetchTypeName = errors.New("unknown fetch type name")

var fetchTypeNames = map[FetchType]string{
	FetchTypeUnknown:            "unknown",
	FetchTypeLocalProfile:       "local_profile",
	FetchTypeStorageManifest:    "storage_manifest",
	FetchTypeSubscriptionStatus: "subscription_status",
}

// FetchTypes returns every member that may be sent, in declaration order.
func FetchTypes() []FetchType {
	return []FetchType{
		FetchTypeLocalProfile,
		FetchTypeStorageManifest,
		FetchTypeSubscriptionStatus,
	}
}

// IsKnown reports whether t is a transmittable member of the taxonomy.
func (t FetchType) IsKnown() bool {
	switch t {
	case FetchTypeLocalProfile, FetchTypeStorageManifest, FetchTypeSubscriptionStatus:
		return true
	default:
		return false
	}
}

// String returns the stable snake-case name of t. Values outside the
// taxonomy render as "unknown".
func (t FetchType) String() string {
	if name, ok := fetchTypeNames[t]; ok {
		return name
	}
	return fetchTypeNames[FetchTypeUnknown]
}

// ParseFetchType maps a name produced by String back to its member. Dashes
// are accepted in place of underscores. "unknown" is rejected because it can
// never be requested.
func ParseFetchType(name string) (FetchType, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, t := range FetchTypes() {
		if fetchTypeNames[t] == normalized {
			return t, nil
		}
	}

	return FetchTypeUnknown, ErrUnknownFetchTypeName
}
