package views

import (
	"html/template"

	"github.com/eringen/monomotapa/site"
)

// SiteConfig holds the site-wide settings every page template can see.
type SiteConfig struct {
	Name string
	URL  string
}

// PageData is the value page templates execute against.
type PageData struct {
	Site SiteConfig

	// Name is the route being rendered.
	Name        string
	Title       string
	Heading     string
	Contents    template.HTML
	InternalCSS template.CSS
	Stylesheets []string
	HeadLinks   []site.HeadLink
	Footer      string
	Navigation  site.Navigation

	// JSONLD is the schema.org description of the page.
	JSONLD template.JS
}

// NewPageData copies the resolved attributes of p into a PageData.
func NewPageData(cfg SiteConfig, p site.Page, contents template.HTML) PageData {
	return PageData{
		Site:        cfg,
		Name:        p.Name,
		Title:       p.Title,
		Heading:     p.Heading,
		Contents:    contents,
		Stylesheets: p.Stylesheets,
		HeadLinks:   p.HeadLinks,
		Footer:      p.Footer,
		JSONLD:      template.JS(WebPageJsonLD(p, cfg)),
	}
}
