package views

import (
	"encoding/json"
	"net/url"
	"path"

	"github.com/eringen/monomotapa/site"
)

// BuildURL joins path segments onto a base URL.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join("/", u.Path, path.Join(pathSegments...))
	return u.String()
}

// PageURL returns the absolute URL of route on the site. The index page
// lives at the site root.
func PageURL(cfg SiteConfig, route string) string {
	if route == "index" {
		route = ""
	}
	return BuildURL(cfg.URL, route)
}

// PathEscape wraps url.PathEscape for use in templates.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// WebPageJsonLD produces a schema.org WebPage JSON-LD block for p.
func WebPageJsonLD(p site.Page, cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     p.Title,
		"headline": p.Heading,
	}
	if cfg.URL != "" {
		data["url"] = PageURL(cfg, p.Name)
	}
	if cfg.Name != "" {
		data["isPartOf"] = map[string]string{
			"@type": "WebSite",
			"name":  cfg.Name,
			"url":   BuildURL(cfg.URL),
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
