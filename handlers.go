package monomotapa

import (
	"errors"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"net/http"
	"os/exec"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/eringen/monomotapa/highlight"
	"github.com/eringen/monomotapa/site"
	"github.com/eringen/monomotapa/testrunner"
	"github.com/eringen/monomotapa/views"
)

const (
	// primarySource is the file holding the request handlers, shown on
	// every source page.
	primarySource = "handlers.go"
	// testSource holds the handler tests run by /unit-tests.
	testSource = "handlers_test.go"
)

// specialPages have no markdown source but can still be inspected on
// /source.
var specialPages = []string{"source", "unit-tests", "404"}

const runTestsButton = `<p><a href="/unit-tests" class="button">Run unit tests</a></p>` + "\n"

const (
	passColor = "#ddffdd"
	failColor = "#ffaaaa"
)

func (a *App) handleIndex(c echo.Context) error {
	return a.renderMarkdownPage(c, "index")
}

func (a *App) handlePage(c echo.Context) error {
	return a.renderMarkdownPage(c, c.Param("*"))
}

// renderMarkdownPage renders the markdown source of route through its
// template, or responds 404 when the route has no source.
func (a *App) renderMarkdownPage(c echo.Context, route string) error {
	page := a.Site.Resolve(route)
	src, ok := a.Site.PageSource(page)
	if !ok {
		return echo.ErrNotFound
	}
	contents, ok := a.Markdown.RenderFile(a.Site.Fs(), src, page.Trusted)
	if !ok {
		return echo.ErrNotFound
	}
	return a.renderPage(c, http.StatusOK, page, contents)
}

// renderPage executes the page's template with contents as its body.
func (a *App) renderPage(c echo.Context, code int, page site.Page, contents string) error {
	data := views.NewPageData(a.siteConfig(), page, template.HTML(contents))
	data.Navigation = a.Site.Navigation(page.Name, a.urlFor)
	data.InternalCSS = template.CSS(a.highlightCSS)

	cmp, err := a.Templates.Page(a.Site.Template(page), data)
	if err != nil {
		return fmt.Errorf("render %s: %w", page.Name, err)
	}
	return RenderStatus(c, code, cmp)
}

func (a *App) siteConfig() views.SiteConfig {
	return views.SiteConfig{Name: a.Config.Name, URL: a.Config.URL}
}

func (a *App) handleSource(c echo.Context) error {
	name := c.QueryParam("page")
	mdPath, hasSource := a.Site.SourcePath(name, site.SourceDir, site.MarkdownExt)
	if !hasSource && !lo.Contains(specialPages, name) {
		return echo.ErrNotFound
	}

	var b strings.Builder
	if a.Tests != nil {
		b.WriteString(runTestsButton)
	}
	if name == "unit-tests" {
		if err := a.writeEmbeddedSource(&b, testSource); err != nil {
			return err
		}
	}
	if err := a.writeEmbeddedSource(&b, primarySource); err != nil {
		return err
	}
	if hasSource {
		if err := a.writeSiteSource(&b, mdPath); err != nil {
			return err
		}
	}
	if err := a.writeSiteSource(&b, site.TemplatePath(site.BaseTemplate)); err != nil {
		return err
	}
	if err := a.writeSiteSource(&b, site.TemplatePath(a.Site.TemplateFor(name))); err != nil {
		return err
	}

	page := a.Site.Resolve("source", site.Attributes{
		Title:   site.String("view the source code"),
		Heading: site.String("View the Source Code"),
	})
	return a.renderPage(c, http.StatusOK, page, b.String())
}

func (a *App) writeEmbeddedSource(b *strings.Builder, name string) error {
	src, err := fs.ReadFile(a.Sources, name)
	if err != nil {
		return fmt.Errorf("read source %s: %w", name, err)
	}
	return a.writeHighlighted(b, name, src)
}

func (a *App) writeSiteSource(b *strings.Builder, name string) error {
	src, err := a.Site.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read site file %s: %w", name, err)
	}
	return a.writeHighlighted(b, name, src)
}

func (a *App) writeHighlighted(b *strings.Builder, name string, src []byte) error {
	out, err := a.Highlighter.Render(name, src)
	if err != nil {
		return err
	}
	b.WriteString(highlight.Heading(path.Base(name), 2))
	b.WriteString(out)
	return nil
}

func (a *App) handleUnitTests(c echo.Context) error {
	if a.testLimiter != nil && !a.testLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many test runs, try again later")
	}

	res := a.Tests.Run(c.Request().Context())
	var exitErr *exec.ExitError
	if res.Err != nil && !errors.As(res.Err, &exitErr) {
		a.log.Warnw("test run failed", "command", a.Tests.Command, "err", res.Err)
	}
	a.log.Infow("test run finished", "passed", res.Passed, "duration", res.Duration)

	var b strings.Builder
	b.WriteString(runTestsButton)
	b.WriteString(testResult(res))
	if err := a.writeEmbeddedSource(&b, testSource); err != nil {
		return err
	}

	page := a.Site.Resolve("unit-tests", site.Attributes{
		Heading: site.String("Test Results"),
	})
	return a.renderPage(c, http.StatusOK, page, b.String())
}

// testResult formats the outcome of a run as a coloured block holding the
// escaped output.
func testResult(res testrunner.Result) string {
	color, verdict := failColor, "TESTS FAILING"
	if res.Passed {
		color, verdict = passColor, "TESTS PASSED"
	}
	output := res.Output
	if output == "" && res.Err != nil {
		output = res.Err.Error()
	}
	return fmt.Sprintf("<div class=\"output\" style=\"background-color:%s\">\n<strong>%s</strong>\n<pre>%s</pre>\n</div>\n",
		color, verdict, html.EscapeString(output))
}

func (a *App) renderNotFound(c echo.Context) error {
	page := a.Site.Resolve("404", site.Attributes{
		Title:    site.String("404::page not found"),
		Heading:  site.String("Page Not Found"),
		Template: site.String(site.DefaultTemplate),
	})
	return a.renderPage(c, http.StatusNotFound, page, "<p>This page is not there, try somewhere else.</p>")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		if rerr := a.renderNotFound(c); rerr != nil {
			a.log.Errorw("cannot render not found page", "err", rerr)
			if !c.Response().Committed {
				_ = c.String(http.StatusNotFound, "page not found")
			}
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Errorw("server error", "uri", c.Request().RequestURI, "err", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
