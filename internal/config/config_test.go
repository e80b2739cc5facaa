package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresGatewayAndIdentification(t *testing.T) {
	t.Setenv("GATEWAY_URL", "")
	t.Setenv("IDENTIFICATION", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("GATEWAY_URL", "https://gateway.arcbank.test")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GATEWAY_URL", "https://gateway.arcbank.test")
	t.Setenv("IDENTIFICATION", "1712345678")
	t.Setenv("CHANNEL", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "TERMINAL", cfg.Channel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoadParsesTimeout(t *testing.T) {
	t.Setenv("GATEWAY_URL", "https://gateway.arcbank.test")
	t.Setenv("IDENTIFICATION", "1712345678")
	t.Setenv("HTTP_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)

	t.Setenv("HTTP_TIMEOUT", "banana")
	_, err = Load()
	require.Error(t, err)
}
