package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_path":        "json.db",
		"alarm_check_interval": "10s",
		"backup_dir":           "json-backups",
	})

	t.Run("loads JSON from -config", func(t *testing.T) {
		cfg := &Config{LogLevel: "info"}
		parseFile(cfg, []string{"-config", jsonPath})

		assert.Equal(t, "json.db", cfg.DatabasePath)
		assert.Equal(t, 10*time.Second, cfg.AlarmCheckInterval)
		assert.Equal(t, "json-backups", cfg.BackupDir)
		assert.Equal(t, "info", cfg.LogLevel, "absent keys must not clear values")
	})

	t.Run("loads YAML by extension", func(t *testing.T) {
		path := filepath.Join(dir, "conf.yml")
		require.NoError(t, os.WriteFile(path, []byte("database_path: yaml.db\nalarm_check_interval: 2m\n"), 0o600))

		cfg := &Config{}
		parseFile(cfg, []string{"-c", path})

		assert.Equal(t, "yaml.db", cfg.DatabasePath)
		assert.Equal(t, 2*time.Minute, cfg.AlarmCheckInterval)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := &Config{DatabasePath: "defaults.db", AlarmCheckInterval: 42 * time.Second}
		parseFile(cfg, []string{"-d", "other.db"})

		assert.Equal(t, "defaults.db", cfg.DatabasePath)
		assert.Equal(t, 42*time.Second, cfg.AlarmCheckInterval)
	})

	t.Run("missing file → panics", func(t *testing.T) {
		require.Panics(t, func() { parseFile(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}) })
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Panics(t, func() { parseFile(&Config{}, []string{"-config", bad}) })
	})

	t.Run("invalid YAML → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("alarm_check_interval: [1, 2"), 0o600))

		require.Panics(t, func() { parseFile(&Config{}, []string{"-c", bad}) })
	})
}
