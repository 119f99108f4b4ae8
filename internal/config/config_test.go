package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, "payguard-lab", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.NotZero(t, cfg.Server.HTTPPort)
	assert.NotZero(t, cfg.Server.ShutdownTimeout)
}

func TestLoadDefault_ScoringParameters(t *testing.T) {
	cfg, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, DefaultScoring(), cfg.Scoring)
	assert.Equal(t, DefaultClassifier(), cfg.Classifier)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PAYGUARD_SERVER_HTTP_PORT", "9999")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.HTTPPort)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
