package highlight

import (
	"strings"
	"testing"
)

func TestHeading(t *testing.T) {
	if got := Heading("handlers.go", 2); got != "\n<h2>handlers.go</h2>\n" {
		t.Errorf("Heading = %q", got)
	}
}

func TestRender(t *testing.T) {
	h := New("")
	got, err := h.Render("main.go", []byte("package main\n\nfunc main() {}\n"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(got, `<div class="highlight">`) {
		t.Errorf("missing wrapper: %q", got)
	}
	if !strings.Contains(got, `class="chroma"`) {
		t.Errorf("missing chroma classes: %q", got)
	}
	if !strings.Contains(got, "main") {
		t.Errorf("source text missing: %q", got)
	}
}

func TestRenderEscapesSource(t *testing.T) {
	h := New("")
	got, err := h.Render("notes.txt", []byte("<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("source was not escaped: %q", got)
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"handlers.go", "Go"},
		{"static.html", "Go HTML Template"},
		{"page.md", "markdown"},
	}
	for _, tt := range tests {
		got := Lexer(tt.filename).Config().Name
		if !strings.EqualFold(got, tt.want) {
			t.Errorf("Lexer(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
	if Lexer("unknown.zzz") == nil {
		t.Error("Lexer should fall back for unknown files")
	}
}

func TestCSS(t *testing.T) {
	css, err := New("monokai").CSS()
	if err != nil {
		t.Fatalf("CSS: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("CSS = %q", css)
	}
}
