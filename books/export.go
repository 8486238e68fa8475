// Package books converts a LibraryThing JSON export into markdown pages,
// one per book, marked up with the h-item microformat.
package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// Export is a LibraryThing JSON export keyed by book id.
type Export map[string]Book

// Book is one entry of a LibraryThing export. Only the fields used to
// build a record are decoded.
type Book struct {
	Title            string          `json:"title"`
	ISBN             isbnField       `json:"isbn"`
	Date             flexString      `json:"date"`
	Publication      string          `json:"publication"`
	Format           []formatField   `json:"format"`
	Pages            flexString      `json:"pages"`
	Authors          []Author        `json:"authors"`
	PrimaryAuthor    string          `json:"primaryauthor"`
	Language         []string        `json:"language"`
	OriginalLanguage []string        `json:"originallanguage"`
	Awards           []string        `json:"awards"`
	DDC              *Classification `json:"ddc"`
	LCC              *struct {
		Code flexString `json:"code"`
	} `json:"lcc"`
	Subject subjectField `json:"subject"`
	Tags    []*string    `json:"tags"`
}

// Author is a contributor to a book. Role is empty for plain authors.
type Author struct {
	Name string `json:"fl"`
	Role string `json:"role"`
}

// UnmarshalJSON accepts the empty list LibraryThing writes for a book
// without authors.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		*a = Author{}
		return nil
	}
	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// Classification is a Dewey Decimal classification.
type Classification struct {
	Code    []string `json:"code"`
	Wording []string `json:"wording"`
}

type formatField struct {
	Text string `json:"text"`
}

// flexString decodes JSON strings and numbers as a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = flexString(n.String())
	}
	return nil
}

// isbnField holds either the keyed object or the list form of the isbn
// field. The keyed form prefers the ISBN-13 stored under "2".
type isbnField string

func (f *isbnField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = ""
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '{':
		var m map[string]flexString
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		for _, key := range []string{"2", "0"} {
			if v := m[key]; v != "" {
				*f = isbnField(v)
				return nil
			}
		}
	case '[':
		var l []flexString
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		if len(l) > 0 {
			*f = isbnField(l[0])
		}
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = isbnField(v)
	}
	return nil
}

// subjectField flattens the subject lists, which come either keyed by
// index or as a list of lists.
type subjectField []string

func (f *subjectField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = nil
	if len(data) == 0 {
		return nil
	}
	var lists [][]*string
	switch data[0] {
	case '{':
		var m map[string][]*string
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		keys := lo.Keys(m)
		sort.Slice(keys, func(i, j int) bool { return numericLess(keys[i], keys[j]) })
		for _, k := range keys {
			lists = append(lists, m[k])
		}
	case '[':
		if err := json.Unmarshal(data, &lists); err != nil {
			return err
		}
	default:
		return nil
	}
	for _, l := range lists {
		for _, s := range l {
			if s != nil {
				*f = append(*f, *s)
			}
		}
	}
	return nil
}

// numericLess orders keys by their integer value when both are integers.
func numericLess(a, b string) bool {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return x < y
	}
	return a < b
}

// Load decodes a LibraryThing export.
func Load(r io.Reader) (Export, error) {
	var export Export
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return export, nil
}
