// Package site emits the static viewer page: index.html with its
// map-center, cache-busting, and stacking values substituted in.
package site

import (
	"embed"
	"html/template"
	"io"
)

//go:embed index.html.tmpl
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "index.html.tmpl"))

// Data is the substitution set for index.html.tmpl.
type Data struct {
	SpawnX, SpawnZ int32
	CacheVersion   string
	MapsStacked    int
}

// Render writes the populated index.html to w.
func Render(w io.Writer, data Data) error {
	return page.Execute(w, data)
}
