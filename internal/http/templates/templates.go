// Package templates holds the HTML pages served by the web layer.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every bundled page.
func Load() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.html"))
}
