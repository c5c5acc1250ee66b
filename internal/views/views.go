// Package views compiles the HTML fragments sent back inside page envelopes.
//
// Templates are parsed exactly once at startup into a read-only handle;
// handlers pass request-scoped data into Render and never share state.
package views

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var files embed.FS

var templates *template.Template

func Init() error {
	t, err := template.ParseFS(files, "templates/*.tmpl")
	if err != nil {
		return err
	}
	templates = t
	return nil
}

// Render executes the named template and returns the fragment as a string
// for embedding in a JSON envelope.
func Render(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
