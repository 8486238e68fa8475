package markdown

import (
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// maxReferenceLen bounds the search for the ';' closing a reference.
const maxReferenceLen = 40

// entityWriter writes text like the default goldmark writer but leaves
// character references untouched instead of resolving them.
type entityWriter struct {
	html.Writer
}

func (w entityWriter) Write(out util.BufWriter, source []byte) {
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] != '&' || backslashEscaped(source, i) {
			continue
		}
		n := referenceLen(source[i:])
		if n == 0 {
			continue
		}
		w.Writer.Write(out, source[start:i])
		_, _ = out.Write(source[i : i+n])
		start = i + n
		i += n - 1
	}
	w.Writer.Write(out, source[start:])
}

// backslashEscaped reports whether source[i] follows an odd number of
// backslashes.
func backslashEscaped(source []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && source[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// referenceLen returns the length of the named or numeric character
// reference at the start of b, or 0 when there is none.
func referenceLen(b []byte) int {
	limit := min(len(b), maxReferenceLen)
	end := -1
	for i := 1; i < limit; i++ {
		if b[i] == ';' {
			end = i
			break
		}
	}
	if end < 2 {
		return 0
	}

	name := b[1:end]
	if name[0] != '#' {
		if _, ok := util.LookUpHTML5EntityByName(string(name)); !ok {
			return 0
		}
		return end + 1
	}

	digits := name[1:]
	hex := len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X')
	if hex {
		digits = digits[1:]
	}
	if len(digits) == 0 || len(digits) > 7 {
		return 0
	}
	for _, c := range digits {
		switch {
		case c >= '0' && c <= '9':
		case hex && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		default:
			return 0
		}
	}
	return end + 1
}
