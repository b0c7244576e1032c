package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	// GIVEN a config file that only sets the port
	path := writeConfig(t, "port: 9090\n")

	// WHEN loading it
	cfg, err := Load(path)
	require.NoError(t, err)

	// THEN the port is overridden and everything else keeps defaults
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "paperledger.db", cfg.DBPath)
	assert.Equal(t, 0.4, cfg.Seed.Coverage)
	assert.Equal(t, int64(137), cfg.Seed.Seed)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
port: 3000
db_path: /tmp/ledger.db
seed:
  coverage: 0.75
  seed: 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "/tmp/ledger.db", cfg.DBPath)
	assert.Equal(t, 0.75, cfg.Seed.Coverage)
	assert.Equal(t, int64(42), cfg.Seed.Seed)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"invalid port", "port: 70000\n"},
		{"zero coverage", "seed:\n  coverage: 0\n"},
		{"coverage above one", "seed:\n  coverage: 1.5\n"},
		{"malformed yaml", "port: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
