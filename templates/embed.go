// Package templates holds the embedded HTML template set. Every page
// template wraps itself in the shared chrome partials defined in
// layout.tmpl.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// Parse builds the full template set. Panics on a malformed template,
// which is what we want at startup.
func Parse() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.tmpl"))
}
