package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/hoyowiki/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoyowiki.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  listen: \":9090\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Server.Listen)
	require.Equal(t, "https://honkaiimpact3.fandom.com/api.php", cfg.Wiki.Endpoint)
	require.Equal(t, "https://honkaiimpact3.fandom.com/wiki/", cfg.Wiki.BaseURL)
	require.Equal(t, "hoyowiki.db", cfg.Index.Path)
	require.Equal(t, 120*time.Second, cfg.Cache.TTL)
	require.Equal(t, 6*time.Hour, cfg.Sync.Interval)
	require.Equal(t, model.RequestCategories, cfg.Sync.Categories)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("HOYOWIKI_NATS_URL", "nats://cache.internal:4222")
	path := writeConfig(t, "cache:\n  nats:\n    url: ${HOYOWIKI_NATS_URL}\n    bucket: content\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "nats://cache.internal:4222", cfg.Cache.NATS.URL)
}

func TestLoad_ReplacementTables(t *testing.T) {
	path := writeConfig(t, `replacements:
  tags:
    dec: "*"
  templates:
    star: "☆"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "*", cfg.Replacements.Tags["dec"])
	require.Equal(t, "☆", cfg.Replacements.Templates["star"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "wiki: [not a mapping")
	_, err := Load(path)
	require.Error(t, err)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoyowiki.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Server.Metrics)
	require.Equal(t, "hoyowiki-content", cfg.Cache.NATS.Bucket)
}

func TestInit_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoyowiki.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, ":8080", cfg.Server.Listen)
	require.NotEmpty(t, cfg.Sync.Categories)
}
