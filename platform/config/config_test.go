package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{})
	require.NoError(t, err)
	assert.Equal(t, 4101, cfg.HttpPort)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, 60*time.Second, cfg.AbandonTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CorsOrigins)
}

func TestParseFlagsAndEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("STEP_DELAY", "0s")

	cfg, err := Parse([]string{"--store=redis", "--http-port=9000"})
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, 9000, cfg.HttpPort)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisUrl)
	assert.Equal(t, time.Duration(0), cfg.StepDelay)
}

func TestParseRejectsUnknownStore(t *testing.T) {
	_, err := Parse([]string{"--store=etcd"})
	assert.Error(t, err)
}
