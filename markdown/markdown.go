// Package markdown converts page sources to HTML.
//
// Trusted sources are converted literally: raw HTML passes through and
// entity references such as &aleph; are kept as written. Untrusted sources
// are escaped before conversion and the result is run through a UGC
// sanitising policy.
package markdown

import (
	"bytes"
	stdhtml "html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/eringen/monomotapa/log"
)

// DefaultStyle is the chroma style used for fenced code blocks.
const DefaultStyle = "friendly"

// Renderer holds the goldmark pipelines for trusted and untrusted sources.
type Renderer struct {
	style     string
	trusted   goldmark.Markdown
	untrusted goldmark.Markdown
	policy    *bluemonday.Policy
	log       *zap.SugaredLogger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlightStyle sets the chroma style for fenced code blocks.
func WithHighlightStyle(style string) Option {
	return func(r *Renderer) {
		if style != "" {
			r.style = style
		}
	}
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		style: DefaultStyle,
		log:   log.S().Named("markdown"),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.trusted = r.newMarkdown(
		html.WithUnsafe(),
		html.WithWriter(entityWriter{html.DefaultWriter}),
	)
	r.untrusted = r.newMarkdown()
	r.policy = newPolicy()
	return r
}

func (r *Renderer) newMarkdown(opts ...renderer.Option) goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Footnote,
			extension.Linkify,
			highlighting.NewHighlighting(
				highlighting.WithStyle(r.style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(opts...),
	)
}

// newPolicy allows user generated content plus the class names chroma
// emits for highlighted code.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "pre", "div", "code")
	return p
}

// Style returns the chroma style used for code blocks.
func (r *Renderer) Style() string {
	return r.style
}

// Render converts src to HTML. Untrusted sources have every HTML special
// character escaped first, so embedded markup shows up as text.
func (r *Renderer) Render(src []byte, trusted bool) (string, error) {
	var buf bytes.Buffer
	if trusted {
		if err := r.trusted.Convert(src, &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	escaped := stdhtml.EscapeString(string(src))
	if err := r.untrusted.Convert([]byte(escaped), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}

// RenderFile reads name from fsys and renders it. It reports false when the
// file cannot be read or converted.
func (r *Renderer) RenderFile(fsys afero.Fs, name string, trusted bool) (string, bool) {
	src, err := afero.ReadFile(fsys, name)
	if err != nil {
		r.log.Debugw("cannot read markdown source", "file", name, "err", err)
		return "", false
	}
	out, err := r.Render(src, trusted)
	if err != nil {
		r.log.Warnw("cannot convert markdown source", "file", name, "err", err)
		return "", false
	}
	return out, true
}
