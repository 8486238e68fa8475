// Package monomotapa is a personal micro CMS built with Go, Echo and templ.
// Markdown files under a site's src/ directory are served as HTML pages,
// with per-page metadata taken from small JSON files in the site root.
//
// The server can also display its own source code and run its own test
// suite from the browser.
package monomotapa

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/eringen/monomotapa/highlight"
	"github.com/eringen/monomotapa/log"
	"github.com/eringen/monomotapa/markdown"
	"github.com/eringen/monomotapa/site"
	"github.com/eringen/monomotapa/testrunner"
	"github.com/eringen/monomotapa/views"
)

// App is the central monomotapa application. It wires together the site
// files, the renderers, the test runner, handlers and middleware.
type App struct {
	Config      SiteConfig
	Echo        *echo.Echo
	Site        *site.Site
	Markdown    *markdown.Renderer
	Highlighter *highlight.Highlighter
	Templates   *views.Templates
	Tests       *testrunner.Runner

	// Sources holds the files shown on /source.
	Sources fs.FS

	log          *zap.SugaredLogger
	siteFs       afero.Fs
	highlightCSS string
	testLimiter  *RunLimiter
	sitemap      *sitemapCache
	customRoutes []func(*App)
}

// New creates a new App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()
	log.SetDebug(cfg.Debug)

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Sources: Sources,
		log:     log.S().Named("app"),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.siteFs == nil {
		a.siteFs = afero.NewBasePathFs(afero.NewOsFs(), cfg.SiteRoot)
	}
	a.Site = site.New(a.siteFs)
	a.Templates = views.NewTemplates(a.siteFs)
	a.Markdown = markdown.New(markdown.WithHighlightStyle(cfg.HighlightStyle))
	a.Highlighter = highlight.New(cfg.HighlightStyle)
	a.sitemap = newSitemapCache(cfg.SitemapTTL, a.sitemapPages)
	if css, err := a.Highlighter.CSS(); err != nil {
		a.log.Warnw("cannot generate highlight stylesheet", "style", cfg.HighlightStyle, "err", err)
	} else {
		a.highlightCSS = css
	}
	if cfg.EnableUnitTests {
		a.Tests = testrunner.New(cfg.TestCommand, cfg.TestDir, cfg.TestPassMarker, cfg.TestTimeout)
		if cfg.TestRunsPerMinute > 0 {
			a.testLimiter = NewRunLimiter(cfg.TestRunsPerMinute, time.Minute)
		}
	}
	return a
}

// Setup checks the site, then installs middleware and routes. It is called
// by Start and may be called directly to serve the App with httptest.
func (a *App) Setup() error {
	if err := a.Site.CheckTemplates(); err != nil {
		return fmt.Errorf("monomotapa: %w", err)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if a.Config.Debug {
		pprof.Register(a.Echo)
	}
	return nil
}

// Start sets the App up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}

	a.log.Infow("listening", "addr", a.Config.Addr, "site_root", a.Config.SiteRoot)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.testLimiter != nil {
		a.testLimiter.Stop()
	}
	return a.Echo.Close()
}

func (a *App) setupRoutes() {
	e := a.Echo

	static := afero.NewIOFS(afero.NewBasePathFs(a.siteFs, site.StaticDir))
	e.StaticFS("/static", static)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/source", a.handleSource).Name = "source"
	if a.Tests != nil {
		e.GET("/unit-tests", a.handleUnitTests).Name = "unit-tests"
	}

	e.GET("/", a.handleIndex).Name = "index"
	e.GET("/*", a.handlePage).Name = "page"
}

// urlFor resolves a named route to its path.
func (a *App) urlFor(name string) (string, bool) {
	for _, r := range a.Echo.Routes() {
		if r.Name == name {
			return r.Path, true
		}
	}
	return "", false
}
