package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse returns the named page wrapped in the shared layout.
func Parse(name string) (*template.Template, error) {
	tmpl, err := template.New("layout.html").ParseFS(files, "layout.html", name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}
