package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayFamily(t *testing.T) {
	assert.Equal(t, "Llama", Model{Family: "Llama"}.DisplayFamily())
	assert.Equal(t, "General", Model{}.DisplayFamily())
}

func TestInstallState(t *testing.T) {
	assert.Equal(t, InstallStateInstalled, Model{Downloaded: true}.InstallState())
	assert.Equal(t, InstallStateDownloading, Model{Downloading: true}.InstallState())
	assert.Equal(t, InstallStateAbsent, Model{}.InstallState())

	// Downloaded wins if the engine ever reports both flags.
	assert.Equal(t, InstallStateInstalled, Model{Downloaded: true, Downloading: true}.InstallState())

	assert.Equal(t, "Installed", InstallStateInstalled.String())
	assert.Equal(t, "Downloading", InstallStateDownloading.String())
	assert.Equal(t, "Available", InstallStateAbsent.String())
}

func TestEngineStatusActive(t *testing.T) {
	assert.True(t, EngineStatus{Engine: "mlx"}.Active())
	assert.False(t, EngineStatus{Engine: "none"}.Active())
	assert.False(t, EngineStatus{}.Active())
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Status: 500, Detail: "no space left on device"}
	assert.Contains(t, err.Error(), "no space left on device")

	var serr *ServiceError
	assert.True(t, errors.As(error(err), &serr))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "name", Reason: "must not be empty"}
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "must not be empty")
}
