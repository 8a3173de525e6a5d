package config

import (
	"os"
	"path/filepath"
	"testing"

	"mailrecon/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 64, cfg.Server.BodyLimitMB)
	assert.Equal(t, "mailboxes", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 993, cfg.IMAP.Port)
	assert.True(t, cfg.IMAP.TLS)
	assert.Equal(t, "INBOX", cfg.IMAP.Folder)
	assert.Equal(t, "mailrecon", cfg.Credential.Service)
	assert.Equal(t, reconcile.DefaultSettings(), cfg.Match)
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()

	yaml := "server:\n  port: \"9000\"\nmatch:\n  min_certainty: medium\n  workers: 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	// Registered first so the values written by .env are restored afterwards.
	t.Setenv("MATCH_WORKERS", "")
	t.Setenv("MATCH_USE_CONTENT", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MATCH_WORKERS=8\nMATCH_USE_CONTENT=false\n"), 0o644))

	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "medium", cfg.Match.MinCertainty)
	assert.Equal(t, 8, cfg.Match.Workers)
	assert.False(t, cfg.Match.UseContent)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
