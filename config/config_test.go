package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxnote/config"
)

func baseConfig() config.AppConfig {
	return config.AppConfig{
		Models: map[string]config.ModelProfile{
			"default": {
				URL:       "https://api.example.com/v1",
				APIKey:    "test-key",
				ModelName: "gpt-test",
			},
		},
	}
}

func TestDefaults(t *testing.T) {
	config.Set(baseConfig())
	cfg := config.GetConfig()

	assert.Equal(t, 200, cfg.Settings.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Settings.MaxRetries)
	assert.Equal(t, 0.1, cfg.Settings.Temperature)
	assert.Equal(t, 4000, cfg.Settings.MaxTokens)
	assert.Equal(t, "default", cfg.Processing.ActiveModel)
	assert.Equal(t, 1, cfg.Processing.BatchWorkers)
}

func TestProfileLookup(t *testing.T) {
	config.Set(baseConfig())

	p, err := config.Profile("default")
	require.NoError(t, err)
	assert.Equal(t, "gpt-test", p.ModelName)

	_, err = config.Profile("missing")
	assert.Error(t, err)
}

func TestUpdateModelProfileSwapsSnapshot(t *testing.T) {
	config.Set(baseConfig())
	before := config.GetConfig()

	err := config.UpdateModelProfile("qwen", "http://localhost:8000/v1", "dummy", "qwen-turbo")
	require.NoError(t, err)

	after := config.GetConfig()
	assert.Contains(t, after.Models, "qwen")
	// The previous snapshot must stay untouched.
	assert.NotContains(t, before.Models, "qwen")
	assert.Equal(t, []string{"default", "qwen"}, config.ListModels())
}

func TestUpdateModelProfileRequiresAllFields(t *testing.T) {
	config.Set(baseConfig())
	err := config.UpdateModelProfile("broken", "", "key", "model")
	assert.Error(t, err)
}
