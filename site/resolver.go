package site

import (
	"path/filepath"
	"strings"
)

// Resolve builds the attributes of route. Layers are applied in order of
// increasing precedence: computed defaults, defaults.json, the route's
// entry in pages.json, then overrides.
func (s *Site) Resolve(route string, overrides ...Attributes) Page {
	name := strings.TrimRight(route, "/")
	page := Page{
		Name:     name,
		Src:      name + MarkdownExt,
		Title:    strings.ToLower(name),
		Heading:  Capitalize(name),
		Template: DefaultTemplate,
	}

	page.apply(s.Defaults())
	if attrs, ok := s.Pages()[name]; ok {
		page.apply(attrs)
	}
	for _, o := range overrides {
		page.apply(o)
	}
	return page
}

// PageSource returns the path of the markdown file that renders p.
func (s *Site) PageSource(p Page) (string, bool) {
	return s.locate(SourceDir, p.Src)
}

// SourcePath returns the path of the file backing name inside dir. The
// file name comes from the "src" attribute in pages.json when set,
// otherwise it is name plus ext.
func (s *Site) SourcePath(name, dir, ext string) (string, bool) {
	filename := name + Extension(ext)
	if attrs, ok := s.Pages()[name]; ok && attrs.Src != nil && *attrs.Src != "" {
		filename = *attrs.Src
	}
	return s.locate(dir, filename)
}

// Template returns the template used to render p, falling back to the
// default template when p names one that does not exist.
func (s *Site) Template(p Page) string {
	if _, ok := s.locate(TemplatesDir, p.Template); ok {
		return p.Template
	}
	return DefaultTemplate
}

// TemplateFor resolves route and returns its template.
func (s *Site) TemplateFor(route string) string {
	return s.Template(s.Resolve(route))
}

// TemplatePath returns the site-relative path of a template file.
func TemplatePath(name string) string {
	return filepath.Join(TemplatesDir, name)
}
