package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal_SubjectRoundTrip(t *testing.T) {
	p := Principal{ACI: "9d0652a3-dcc3-4d11-975f-74d61598733f", DeviceID: 3}

	assert.Equal(t, "9d0652a3-dcc3-4d11-975f-74d61598733f.3", p.Subject())

	parsed, err := ParsePrincipal(p.Subject())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePrincipal_Invalid(t *testing.T) {
	for _, subject := range []string{"", "aci", ".2", "aci.", "aci.zero", "aci.0", "aci.-1"} {
		_, err := ParsePrincipal(subject)
		assert.ErrorIs(t, err, ErrInvalidPrincipal, subject)
	}
}

func TestAccountState_IsRegistered(t *testing.T) {
	assert.True(t, AccountState{ACI: "a", DeviceID: 1, State: Registered}.IsRegistered())
	assert.False(t, AccountState{ACI: "a", DeviceID: 1, State: Deregistered}.IsRegistered())
	assert.False(t, AccountState{DeviceID: 1, State: Registered}.IsRegistered())
	assert.False(t, AccountState{ACI: "a", State: Registered}.IsRegistered())
}

func TestRegistrationState_String(t *testing.T) {
	assert.Equal(t, "pending_backup_restore", PendingBackupRestore.String())
	assert.Equal(t, "unknown", RegistrationState(42).String())
}
