package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, NotifyLog, cfg.Notifications)
	assert.Equal(t, "studysmart.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, ".studysmart", filepath.Base(filepath.Dir(cfg.DBPath)))
}

func TestLoad_FileThenEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "studysmart.yaml")
	require.NoError(t, os.WriteFile(file, []byte("db_path: /tmp/a.db\nlog_level: debug\nnotifications: title\n"), 0o600))
	t.Setenv("STUDYSMART_LOG_LEVEL", "error")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.LogLevel, "environment wins over the file")
	assert.Equal(t, NotifyTitle, cfg.Notifications)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("STUDYSMART_NOTIFICATIONS", "email")
	_, err = Load("")
	require.ErrorContains(t, err, "invalid notifications")
}

func TestYAML(t *testing.T) {
	cfg := Config{DBPath: "/x.db", LogLevel: "info", Notifications: NotifyNone}
	out, err := cfg.YAML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, cfg, back)
	assert.Contains(t, out, "db_path: /x.db")
}
