package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.0", "2026-10-01", "abc123")

	assert.Equal(t, "1.2.0", info.BuildVersion())
	assert.Equal(t, "2026-10-01", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.True(t, info.HasVersion())
}

func TestNewAppBuildInfo_EmptyValuesAreNotAvailable(t *testing.T) {
	info := NewAppBuildInfo("", "", "")

	assert.Equal(t, BuildInfoNotAvailable, info.BuildVersion())
	assert.Equal(t, BuildInfoNotAvailable, info.BuildDate())
	assert.Equal(t, BuildInfoNotAvailable, info.BuildCommit())
	assert.False(t, info.HasVersion())
	assert.False(t, NewAppBuildInfo(BuildInfoNotAvailable, "", "").HasVersion())
	assert.False(t, AppBuildInfo{}.HasVersion())
}
