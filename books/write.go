package books

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/eringen/monomotapa/log"
)

// Supplement returns the extra markdown kept for pageName in extraDir,
// preceded by a blank line, or "" when there is none.
func Supplement(extraDir, pageName string) (string, error) {
	if extraDir == "" {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(extraDir, pageName))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read supplement: %w", err)
	}
	return "\n\n" + string(data), nil
}

// Writer writes records as markdown files.
type Writer struct {
	// Dir receives one file per record.
	Dir string
	// ExtraDir holds hand-written supplements appended to matching pages.
	ExtraDir string

	log *zap.SugaredLogger
}

// NewWriter returns a Writer for dir, appending supplements from extraDir.
func NewWriter(dir, extraDir string) *Writer {
	return &Writer{
		Dir:      dir,
		ExtraDir: extraDir,
		log:      log.S().Named("books"),
	}
}

// Write writes one record atomically and returns the file's path.
func (w *Writer) Write(r Record) (string, error) {
	p := filepath.Join(w.Dir, r.PageName)
	if r.BadTitle {
		w.log.Warnw("title may need a manual fix", "title", r.Title, "file", p)
	}
	extra, err := Supplement(w.ExtraDir, r.PageName)
	if err != nil {
		return "", err
	}
	if err := atomic.WriteFile(p, strings.NewReader(r.Markdown()+extra)); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	w.log.Debugw("wrote book", "title", r.Title, "file", p)
	return p, nil
}

// WriteAll writes every record, creating Dir when needed, and returns the
// paths written.
func (w *Writer) WriteAll(records []Record) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(records))
	for _, r := range records {
		p, err := w.Write(r)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
