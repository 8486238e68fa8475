package monomotapa

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"

	"github.com/eringen/monomotapa/site"
	"github.com/eringen/monomotapa/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapPage is a servable route and the modification date of its source.
type sitemapPage struct {
	Route   string
	LastMod string
}

// sitemapPages lists every route backed by a markdown file under src/.
// Files named as another route's src in pages.json are listed under that
// route.
func (a *App) sitemapPages() ([]sitemapPage, error) {
	routeFor := make(map[string]string)
	for route, attrs := range a.Site.Pages() {
		if attrs.Src != nil && *attrs.Src != "" {
			routeFor[filepath.ToSlash(*attrs.Src)] = route
		}
	}

	var pages []sitemapPage
	err := afero.Walk(a.Site.Fs(), site.SourceDir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != site.MarkdownExt {
			return nil
		}
		rel, err := filepath.Rel(site.SourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		route, ok := routeFor[rel]
		if !ok {
			route = strings.TrimSuffix(rel, site.MarkdownExt)
		}
		pages = append(pages, sitemapPage{
			Route:   route,
			LastMod: info.ModTime().UTC().Format("2006-01-02"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", site.SourceDir, err)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.sitemap.Pages()
	if err != nil {
		return err
	}
	cfg := a.siteConfig()
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		urls = append(urls, sitemapURL{Loc: views.PageURL(cfg, p.Route), LastMod: p.LastMod})
	}
	return renderXML(c, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /source\n")
	b.WriteString("Disallow: /unit-tests\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", views.BuildURL(a.Config.URL, "sitemap.xml"))
	return c.String(http.StatusOK, b.String())
}
