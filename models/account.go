// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RegistrationState describes where the local account is in its
// registration lifecycle.
type RegistrationState int

const (
	// Unregistered means the device has never completed registration.
	Unregistered RegistrationState = iota

	// PendingBackupRestore means registration succeeded but the user still
	// has to decide whether to restore a backup.
	PendingBackupRestore

	// Registered means the device is fully registered and may send sync
	// messages to its linked devices.
	Registered

	// Deregistered means the server rejected the credentials (for example
	// after a transfer to another device) and re-registration is required.
	Deregistered

	// Reregistering means the user is re-registering with the same number.
	Reregistering
)

var registrationStateNames = map[RegistrationState]string{
	Unregistered:         "unregistered",
	PendingBackupRestore: "pending_backup_restore",
	Registered:           "registered",
	Deregistered:         "deregistered",
	Reregistering:        "reregistering",
}

// String returns the snake-case name of the state.
func (s RegistrationState) String() string {
	if name, ok := registrationStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// AccountState is the point-in-time view of the local account that sync
// messages are built from.
type AccountState struct {
	// ACI is the account identifier shared by every linked device.
	ACI string `json:"aci"`

	// E164 is the phone number of the account, if known.
	E164 string `json:"e164,omitempty"`

	// DeviceID identifies this device within the account. The primary
	// device is 1.
	DeviceID uint32 `json:"device_id"`

	// DeviceName is the user-visible name of this device.
	DeviceName string `json:"device_name,omitempty"`

	// State is the registration state of the account on this device.
	State RegistrationState `json:"state"`

	// RegisteredAt is when registration completed.
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

// IsRegistered reports whether the account may emit sync messages.
func (a AccountState) IsRegistered() bool {
	return a.State == Registered && a.ACI != "" && a.DeviceID != 0
}
