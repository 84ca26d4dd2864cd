package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUIConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	ui := cfg.GetUIConfig()
	assert.Equal(t, DefaultPort, ui.Port)
	assert.True(t, ui.Watch)
}

func TestGetUIConfig_DoesNotMutateLoadedConfig(t *testing.T) {
	cfg := &Config{UI: &UIConfig{Watch: true}}

	ui := cfg.GetUIConfig()
	assert.Equal(t, DefaultPort, ui.Port)

	// Defaulting happens on the returned copy only.
	assert.Equal(t, 0, cfg.UI.Port)

	ui.Port = 1234
	assert.Equal(t, 0, cfg.UI.Port)
}

func TestGetUIConfig_ExplicitPortKept(t *testing.T) {
	cfg := &Config{UI: &UIConfig{Port: 9000}}
	assert.Equal(t, 9000, cfg.GetUIConfig().Port)
}
