package site

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// HeadLink is an extra <link> element placed in the page head.
type HeadLink struct {
	Rel   string `json:"rel"`
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// Attributes is one layer of page configuration. Nil scalars leave the
// underlying value untouched; list fields are appended.
type Attributes struct {
	Src         *string    `json:"src,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Heading     *string    `json:"heading,omitempty"`
	Template    *string    `json:"template,omitempty"`
	Trusted     *bool      `json:"trusted,omitempty"`
	Footer      *string    `json:"footer,omitempty"`
	Stylesheets []string   `json:"stylesheets,omitempty"`
	HeadLinks   []HeadLink `json:"hlinks,omitempty"`
}

// Page is the fully resolved set of attributes used to render a route.
type Page struct {
	Name        string
	Src         string
	Title       string
	Heading     string
	Template    string
	Trusted     bool
	Footer      string
	Stylesheets []string
	HeadLinks   []HeadLink
}

func (p *Page) apply(a Attributes) {
	if a.Src != nil {
		p.Src = *a.Src
	}
	if a.Title != nil {
		p.Title = *a.Title
	}
	if a.Heading != nil {
		p.Heading = *a.Heading
	}
	if a.Template != nil {
		p.Template = *a.Template
	}
	if a.Trusted != nil {
		p.Trusted = *a.Trusted
	}
	if a.Footer != nil {
		p.Footer = *a.Footer
	}
	p.Stylesheets = append(p.Stylesheets, a.Stylesheets...)
	p.HeadLinks = append(p.HeadLinks, a.HeadLinks...)
}

// String returns a pointer to s, for building Attributes literals.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b, for building Attributes literals.
func Bool(b bool) *bool {
	return &b
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Extension normalises a file extension so that "md" and ".md" both
// yield ".md". An empty extension stays empty.
func Extension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
