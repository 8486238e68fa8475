package monomotapa

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/eringen/monomotapa/highlight"
	"github.com/eringen/monomotapa/log"
	"github.com/eringen/monomotapa/testrunner"
)

// ConfigName is the configuration file searched for on start-up.
const ConfigName = "config.json"

// SiteConfig holds all configuration for a monomotapa site.
type SiteConfig struct {
	Name string `mapstructure:"site_name"` // Site name (default "Monomotapa")
	URL  string `mapstructure:"site_url"`  // Canonical URL (default "http://localhost:5000")

	Addr     string `mapstructure:"addr"`      // Listen address (default ":5000")
	SiteRoot string `mapstructure:"site_root"` // Directory holding src/, templates/ and static/
	Debug    bool   `mapstructure:"debug"`

	EnableUnitTests   bool          `mapstructure:"enable_unit_tests"`
	TestCommand       []string      `mapstructure:"test_command"`
	TestDir           string        `mapstructure:"test_dir"`
	TestPassMarker    string        `mapstructure:"test_pass_marker"`
	TestTimeout       time.Duration `mapstructure:"test_timeout"`
	TestRunsPerMinute int           `mapstructure:"test_runs_per_minute"` // <= 0 disables the limit

	HighlightStyle string        `mapstructure:"highlight_style"`
	SitemapTTL     time.Duration `mapstructure:"sitemap_ttl"` // <= 0 walks src/ on every request
}

var defaults = map[string]any{
	"site_name":            "Monomotapa",
	"site_url":             "http://localhost:5000",
	"addr":                 ":5000",
	"site_root":            ".",
	"debug":                false,
	"enable_unit_tests":    false,
	"test_command":         testrunner.DefaultCommand,
	"test_dir":             "",
	"test_pass_marker":     testrunner.DefaultPassMarker,
	"test_timeout":         "0s",
	"test_runs_per_minute": 6,
	"highlight_style":      highlight.DefaultStyle,
	"sitemap_ttl":          "5m",
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = defaults["site_name"].(string)
	}
	if c.URL == "" {
		c.URL = defaults["site_url"].(string)
	}
	if c.Addr == "" {
		c.Addr = defaults["addr"].(string)
	}
	if c.SiteRoot == "" {
		c.SiteRoot = "."
	}
	if len(c.TestCommand) == 0 {
		c.TestCommand = testrunner.DefaultCommand
	}
	if c.TestDir == "" {
		c.TestDir = c.SiteRoot
	}
	if c.TestPassMarker == "" {
		c.TestPassMarker = testrunner.DefaultPassMarker
	}
	if c.HighlightStyle == "" {
		c.HighlightStyle = highlight.DefaultStyle
	}
}

// configPaths lists the directories searched for config.json, in order.
func configPaths() []string {
	paths := []string{"."}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Dir(exe))
	}
	return append(paths, "/etc/monomotapa", "/etc")
}

// LoadConfig reads the configuration. An explicit path must exist; without
// one config.json is searched for and defaults are used when it is absent.
// Every key can be overridden by a MONOMOTAPA_ prefixed environment
// variable.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("monomotapa")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		for _, p := range configPaths() {
			v.AddConfigPath(p)
		}
	}

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.S().Debugw("loaded configuration", "file", v.ConfigFileUsed())
	case path == "" && errors.As(err, &notFound):
		log.S().Debugw("no configuration file found, using defaults")
	default:
		return SiteConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithSiteFs serves the site from fsys instead of SiteRoot on disk.
func WithSiteFs(fsys afero.Fs) Option {
	return func(a *App) {
		a.siteFs = fsys
	}
}

// WithSources replaces the source files shown on /source.
func WithSources(fsys fs.FS) Option {
	return func(a *App) {
		a.Sources = fsys
	}
}
