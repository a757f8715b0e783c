package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, 30, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "ILS", cfg.Categorization.DefaultCurrency)
	assert.Equal(t, "default", cfg.Categorization.UserID)
}

func TestInitializeConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTOCAT_LOG_LEVEL", "debug")
	t.Setenv("AUTOCAT_DATA_DIRECTORY", "/tmp/autocat-data")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/autocat-data", cfg.Data.Directory)
}

func TestInitializeConfig_GeminiKeyBinding(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("AUTOCAT_AI_ENABLED", "true")

	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestInitializeConfig_AIEnabledWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AUTOCAT_AI_ENABLED", "true")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidateConfig_BadLogFormat(t *testing.T) {
	cfg := defaultConfig()
	cfg.Log.Format = "xml"

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log format")
}

func TestValidateConfig_BadTimeout(t *testing.T) {
	cfg := defaultConfig()
	cfg.AI.Enabled = true
	cfg.AI.APIKey = "key"
	cfg.AI.TimeoutSeconds = 0

	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_seconds")
}
