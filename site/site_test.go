package site

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSite(t *testing.T, files map[string]string) *Site {
	t.Helper()
	fsys := afero.NewBasePathFs(afero.NewMemMapFs(), "/site")
	for name, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return New(fsys)
}

func defaultFiles() map[string]string {
	return map[string]string{
		"pages.json": `{
			"index": {"src": "home.md", "template": "home.html", "title": "home"},
			"about": {"heading": "About Me", "trusted": true, "stylesheets": ["/static/about.css"]},
			"broken": {"template": "missing.html"}
		}`,
		"src/home.md":           "# Home",
		"src/about.md":          "About",
		"src/tmp123.md":         "&aleph; test",
		"templates/base.html":   "{{ .Title }}",
		"templates/static.html": `{{ template "base.html" . }}`,
		"templates/home.html":   `{{ template "base.html" . }}`,
	}
}

func TestResolveWithoutConfigEntry(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	page := s.Resolve("Tmp123")
	assert.Equal(t, "Tmp123", page.Name)
	assert.Equal(t, "tmp123", page.Title)
	assert.Equal(t, "Tmp123", page.Heading)
	assert.Equal(t, DefaultTemplate, page.Template)
	assert.Equal(t, "Tmp123.md", page.Src)
	assert.False(t, page.Trusted)
}

func TestResolveStripsTrailingSlash(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	page := s.Resolve("about/")
	assert.Equal(t, "about", page.Name)
	assert.Equal(t, "About Me", page.Heading)
}

func TestResolveHeadingCapitalizesOnlyFirstLetter(t *testing.T) {
	s := newTestSite(t, nil)

	assert.Equal(t, "Unit-tests", s.Resolve("unit-tests").Heading)
	assert.Equal(t, "Readme", s.Resolve("README").Heading)
	assert.Equal(t, "readme", s.Resolve("README").Title)
}

func TestResolveLayerPrecedence(t *testing.T) {
	files := defaultFiles()
	files["defaults.json"] = `{
		"title": "site title",
		"footer": "default footer",
		"stylesheets": ["/static/site.css"],
		"hlinks": [{"rel": "me", "href": "https://example.org"}]
	}`
	s := newTestSite(t, files)

	page := s.Resolve("about", Attributes{
		Footer:      String("call footer"),
		Stylesheets: []string{"/static/call.css"},
	})

	assert.Equal(t, "site title", page.Title, "defaults.json overrides computed title")
	assert.Equal(t, "About Me", page.Heading, "pages.json overrides computed heading")
	assert.Equal(t, "call footer", page.Footer, "caller overrides win")
	assert.True(t, page.Trusted)
	assert.Equal(t, []string{"/static/site.css", "/static/about.css", "/static/call.css"}, page.Stylesheets)
	require.Len(t, page.HeadLinks, 1)
	assert.Equal(t, "me", page.HeadLinks[0].Rel)
}

func TestResolveCallerOverridesPagesJSON(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	page := s.Resolve("about", Attributes{Heading: String("Override"), Trusted: Bool(false)})
	assert.Equal(t, "Override", page.Heading)
	assert.False(t, page.Trusted)
}

func TestResolveMissingConfigFiles(t *testing.T) {
	s := newTestSite(t, map[string]string{"src/x.md": "x"})

	assert.Empty(t, s.Pages())
	assert.Equal(t, Attributes{}, s.Defaults())
	assert.Equal(t, "x", s.Resolve("x").Title)
}

func TestResolveMalformedConfigFiles(t *testing.T) {
	s := newTestSite(t, map[string]string{
		"pages.json":    `{"x": {"title": `,
		"defaults.json": `[1, 2, 3]`,
	})

	assert.Empty(t, s.Pages())
	assert.Equal(t, Attributes{}, s.Defaults())

	page := s.Resolve("x")
	assert.Equal(t, "x", page.Title)
	assert.Equal(t, "X", page.Heading)
}

func TestSourcePath(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	tests := []struct {
		title string
		name  string
		dir   string
		ext   string
		want  string
		found bool
	}{
		{"file name", "tmp123.md", SourceDir, "", "src/tmp123.md", true},
		{"extension without period", "tmp123", SourceDir, "md", "src/tmp123.md", true},
		{"extension with period", "tmp123", SourceDir, ".md", "src/tmp123.md", true},
		{"lookup in pages.json", "index", SourceDir, "", "src/home.md", true},
		{"nonexistent source", "non_existant", "", "", "", false},
		{"directory is not a source", "src", "", "", "", false},
		{"parent traversal", "../etc/passwd", SourceDir, "", "", false},
		{"absolute path", "/etc/passwd", SourceDir, "", "", false},
	}
	for _, tt := range tests {
		got, ok := s.SourcePath(tt.name, tt.dir, tt.ext)
		assert.Equal(t, tt.found, ok, "found for %s", tt.title)
		assert.Equal(t, tt.want, got, "path for %s", tt.title)
	}
}

func TestPageSource(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	p, ok := s.PageSource(s.Resolve("index"))
	assert.True(t, ok)
	assert.Equal(t, "src/home.md", p)

	_, ok = s.PageSource(s.Resolve("non_existant"))
	assert.False(t, ok)
}

func TestTemplateFor(t *testing.T) {
	s := newTestSite(t, defaultFiles())

	assert.Equal(t, DefaultTemplate, s.TemplateFor("tmp123"))
	assert.Equal(t, "home.html", s.TemplateFor("index"))
	assert.Equal(t, DefaultTemplate, s.TemplateFor("broken"), "missing templates fall back")
}

func TestCheckTemplates(t *testing.T) {
	s := newTestSite(t, defaultFiles())
	assert.NoError(t, s.CheckTemplates())

	s = newTestSite(t, map[string]string{"templates/base.html": ""})
	err := s.CheckTemplates()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTemplate)
	assert.Contains(t, err.Error(), DefaultTemplate)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".md", Extension("md"))
	assert.Equal(t, ".md", Extension(".md"))
	assert.Equal(t, "", Extension(""))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Hello world", Capitalize("hELLO WORLD"))
	assert.Equal(t, "Émile", Capitalize("émile"))
}
