// Package web embeds the HTML templates and static assets so the binary
// is self-contained and handler tests do not depend on the working
// directory.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every embedded template. Panics on malformed
// templates, which is a build defect, not a runtime condition.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Static returns the embedded static asset tree rooted at "static".
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
