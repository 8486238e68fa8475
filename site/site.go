// Package site reads a monomotapa site directory: the JSON configuration
// files, markdown sources and page templates.
//
// Every lookup goes back to disk, so edits to the site are picked up on
// the next request without a restart.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/eringen/monomotapa/log"
)

const (
	DefaultsFile   = "defaults.json"
	PagesFile      = "pages.json"
	NavigationFile = "navigation.json"

	SourceDir    = "src"
	TemplatesDir = "templates"
	StaticDir    = "static"

	BaseTemplate    = "base.html"
	DefaultTemplate = "static.html"
	MarkdownExt     = ".md"
)

// ErrMissingTemplate is returned by CheckTemplates when a template the
// site cannot render without is absent.
var ErrMissingTemplate = errors.New("missing required template")

// Site gives access to the files of one site directory.
type Site struct {
	fs  afero.Fs
	log *zap.SugaredLogger
}

// New returns a Site reading from fsys. Paths are relative to the site root.
func New(fsys afero.Fs) *Site {
	return &Site{
		fs:  fsys,
		log: log.S().Named("site"),
	}
}

// Fs returns the filesystem the site reads from.
func (s *Site) Fs() afero.Fs {
	return s.fs
}

// Defaults returns the attributes from defaults.json, or an empty layer.
func (s *Site) Defaults() Attributes {
	var attrs Attributes
	if !s.readJSON(DefaultsFile, &attrs) {
		return Attributes{}
	}
	return attrs
}

// Pages returns the per-page attributes from pages.json keyed by route.
func (s *Site) Pages() map[string]Attributes {
	var pages map[string]Attributes
	if !s.readJSON(PagesFile, &pages) || pages == nil {
		return map[string]Attributes{}
	}
	return pages
}

// CheckTemplates reports an error wrapping ErrMissingTemplate when the base
// or default page template is absent.
func (s *Site) CheckTemplates() error {
	for _, name := range []string{BaseTemplate, DefaultTemplate} {
		p := filepath.Join(TemplatesDir, name)
		if !s.isFile(p) {
			return fmt.Errorf("%w: %s", ErrMissingTemplate, p)
		}
	}
	return nil
}

// ReadFile reads a file relative to the site root.
func (s *Site) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(s.fs, name)
}

// readJSON decodes name into v. It reports false when the file is missing
// or malformed; malformed files are logged and otherwise ignored.
func (s *Site) readJSON(name string, v any) bool {
	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warnw("cannot read config file", "file", name, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warnw("ignoring malformed config file", "file", name, "err", err)
		return false
	}
	return true
}

// locate returns the path of name inside dir when it is a regular file.
func (s *Site) locate(dir, name string) (string, bool) {
	if name == "" || !filepath.IsLocal(name) || strings.Contains(name, "\\") {
		return "", false
	}
	p := filepath.Join(dir, name)
	if !s.isFile(p) {
		return "", false
	}
	return p, true
}

func (s *Site) isFile(name string) bool {
	info, err := s.fs.Stat(name)
	return err == nil && !info.IsDir()
}
