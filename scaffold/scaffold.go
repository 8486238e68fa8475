// Package scaffold creates the skeleton of a new monomotapa site: the JSON
// configuration files, a home page and the page templates.
package scaffold

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax with [[ ]] delimiters, so page
// templates can keep their own {{ }} actions, and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

const root = "templates"

// Data holds the template variables passed to every scaffold template.
type Data struct {
	SiteName string
	SiteURL  string
}

var funcs = template.FuncMap{
	"json": func(s string) (string, error) {
		b, err := json.Marshal(s)
		return string(b), err
	},
}

// Files lists the site-relative paths Write creates.
func Files() ([]string, error) {
	var files []string
	err := fs.WalkDir(Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, outputPath(p))
		return nil
	})
	return files, err
}

func outputPath(p string) string {
	return strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ".tmpl")
}

// Write renders every scaffold file into fsys, relative to its root.
// Existing files are overwritten.
func Write(fsys afero.Fs, data Data) error {
	return fs.WalkDir(Templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Delims("[[", "]]").Funcs(funcs).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}

		outPath := outputPath(p)
		if dir := path.Dir(outPath); dir != "." {
			if err := fsys.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := fsys.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}
		return nil
	})
}
