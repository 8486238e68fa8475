package books

import (
	"fmt"
	"hash/fnv"

	"github.com/gosimple/slug"
)

// Slugify converts a title to a URL-safe slug. Non-Latin scripts are
// transliterated, so "Война и мир" becomes "voina-i-mir" and "Café"
// becomes "cafe". It returns "" when nothing in s maps to a slug
// character.
func Slugify(s string) string {
	return slug.Make(s)
}

// fallbackSlug names a title that does not slugify, from a hash of its
// text.
func fallbackSlug(title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("book-%08x", h.Sum32())
}
