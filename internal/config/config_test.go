package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-box/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/recipebox.db", cfg.Database.Path)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RECIPEBOX_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("RECIPEBOX_DATABASE_PATH", "/tmp/other.db")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
}
