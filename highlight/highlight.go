// Package highlight renders source files as syntax highlighted HTML.
package highlight

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "friendly"

// Highlighter formats source code with CSS classes from one chroma style.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a Highlighter for the named chroma style. Unknown styles fall
// back to chroma's default.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Lexer picks a lexer for filename. Templates are Go html/template files.
func Lexer(filename string) chroma.Lexer {
	var l chroma.Lexer
	if strings.EqualFold(filepath.Ext(filename), ".html") {
		l = lexers.Get("go-html-template")
	}
	if l == nil {
		l = lexers.Match(filename)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Render highlights src using the lexer for filename.
func (h *Highlighter) Render(filename string, src []byte) (string, error) {
	it, err := Lexer(filename).Tokenise(nil, string(src))
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", filename, err)
	}
	var buf bytes.Buffer
	buf.WriteString(`<div class="highlight">`)
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", fmt.Errorf("format %s: %w", filename, err)
	}
	buf.WriteString("</div>\n")
	return buf.String(), nil
}

// CSS returns the stylesheet for the highlighter's style.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Heading returns an HTML heading of the given level on its own lines.
func Heading(text string, level int) string {
	return fmt.Sprintf("\n<h%d>%s</h%d>\n", level, text, level)
}
