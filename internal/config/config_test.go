package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "http://localhost:8085", cfg.GatewayURL)
	assert.Equal(t, 3*time.Second, cfg.GatewayTimeout())
	assert.Equal(t, 60*time.Second, cfg.CBTiempoAbierto())
	assert.Equal(t, 30*time.Minute, cfg.SesionTTL())
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GATEWAY_URL", "http://gateway.interno:9000")
	t.Setenv("GATEWAY_TIMEOUT_MS", "1500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://gateway.interno:9000", cfg.GatewayURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.GatewayTimeout())
}
