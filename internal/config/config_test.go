package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SUBSQUEEZE_DATA_DIR", dir)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, EnvLocal, cfg.Env)
		assert.Equal(t, dir, cfg.DataDir)
		assert.Equal(t, StorageJSON, cfg.Storage)
		assert.Equal(t, filepath.Join(dir, "subsqueeze.db"), cfg.SQLitePath)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("config file in the data dir", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SUBSQUEEZE_DATA_DIR", dir)

		yaml := "env: prod\nstorage: sqlite\nsqlite_path: /tmp/custom.db\nlog_level: debug\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, EnvProd, cfg.Env)
		assert.Equal(t, StorageSQLite, cfg.Storage)
		assert.Equal(t, "/tmp/custom.db", cfg.SQLitePath)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("environment beats the file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SUBSQUEEZE_DATA_DIR", dir)
		t.Setenv("SUBSQUEEZE_STORAGE", StorageSQLite)
		t.Setenv("SUBSQUEEZE_ENV", EnvDev)

		yaml := "env: local\nstorage: json\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, EnvDev, cfg.Env)
		assert.Equal(t, StorageSQLite, cfg.Storage)
	})

	t.Run("unknown storage backend rejected", func(t *testing.T) {
		t.Setenv("SUBSQUEEZE_DATA_DIR", t.TempDir())
		t.Setenv("SUBSQUEEZE_STORAGE", "etcd")

		_, err := Load()
		assert.Error(t, err)
	})
}
