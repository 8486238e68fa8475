package monomotapa

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ConfigName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `{
		"site_name": "Zimbabwe",
		"debug": true,
		"enable_unit_tests": true,
		"test_command": ["make", "check"],
		"test_timeout": "30s",
		"test_runs_per_minute": 2
	}`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "Zimbabwe", cfg.Name)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.EnableUnitTests)
	assert.Equal(t, []string{"make", "check"}, cfg.TestCommand)
	assert.Equal(t, 30*time.Second, cfg.TestTimeout)
	assert.Equal(t, 2, cfg.TestRunsPerMinute)

	assert.Equal(t, ":5000", cfg.Addr, "unset keys take defaults")
	assert.Equal(t, "ok", cfg.TestPassMarker)
	assert.Equal(t, "friendly", cfg.HighlightStyle)
	assert.Equal(t, 5*time.Minute, cfg.SitemapTTL)
	assert.Equal(t, ".", cfg.TestDir, "test_dir follows site_root")
}

func TestLoadConfigUnitTestsOffByDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	require.NoError(t, err)
	assert.False(t, cfg.EnableUnitTests)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "Monomotapa", cfg.Name)
	assert.Equal(t, []string{"go", "test", "./..."}, cfg.TestCommand)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MONOMOTAPA_ADDR", ":8080")
	t.Setenv("MONOMOTAPA_SITE_ROOT", "/srv/site")

	cfg, err := LoadConfig(writeConfig(t, `{"addr": ":7000"}`))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/srv/site", cfg.SiteRoot)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err, "an explicit config path must exist")

	_, err = LoadConfig(writeConfig(t, `{"addr": `))
	assert.Error(t, err)
}

func TestSetDefaults(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	assert.Equal(t, "Monomotapa", cfg.Name)
	assert.Equal(t, ".", cfg.SiteRoot)
	assert.Equal(t, ".", cfg.TestDir)

	cfg = SiteConfig{SiteRoot: "/srv/site"}
	cfg.setDefaults()
	assert.Equal(t, "/srv/site", cfg.TestDir)
}
