package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigPathOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n  mode: production\n"), 0o644))

	t.Setenv("MICROBLOG_CONFIG", path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "production", cfg.Server.Mode)
	// untouched keys keep their defaults
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}
