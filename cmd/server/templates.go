package main

import (
	"html/template"

	"github.com/Nixie-Tech-LLC/athan/internal/http/templates"
)

// LoadTemplates parses the bundled HTML pages
func LoadTemplates() *template.Template {
	return templates.Load()
}
