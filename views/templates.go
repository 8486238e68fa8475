package views

import (
	"fmt"
	"html/template"
	"path"

	"github.com/a-h/templ"
	"github.com/spf13/afero"

	"github.com/eringen/monomotapa/site"
)

// Templates loads page templates from a site's templates directory. Files
// are parsed on every call so edits show up on the next request.
type Templates struct {
	fs    afero.Fs
	funcs template.FuncMap
}

// NewTemplates returns Templates reading from the site filesystem fsys.
func NewTemplates(fsys afero.Fs) *Templates {
	return &Templates{
		fs: fsys,
		funcs: template.FuncMap{
			"pathEscape": PathEscape,
		},
	}
}

// Load parses the base template together with the page template name.
// Definitions in name override blocks declared in the base template. Each
// file is registered under its base name, so "sub/x.html" is looked up as
// "x.html" in the returned set.
func (t *Templates) Load(name string) (*template.Template, error) {
	files := []string{path.Join(site.TemplatesDir, site.BaseTemplate)}
	if name != site.BaseTemplate {
		files = append(files, path.Join(site.TemplatesDir, name))
	}
	set, err := template.New(path.Base(name)).Funcs(t.funcs).ParseFS(afero.NewIOFS(t.fs), files...)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return set, nil
}

// Page returns a component that executes template name with data.
func (t *Templates) Page(name string, data PageData) (templ.Component, error) {
	set, err := t.Load(name)
	if err != nil {
		return nil, err
	}
	tmpl := set.Lookup(path.Base(name))
	if tmpl == nil {
		return nil, fmt.Errorf("template %s not defined", name)
	}
	return templ.FromGoHTML(tmpl, data), nil
}
