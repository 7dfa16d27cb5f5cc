package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"
)

// Renderer manages template parsing and rendering. Every page template is
// parsed into its own clone of the layout so "content" blocks never collide.
type Renderer struct {
	templates map[string]*template.Template
}

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// NewRenderer parses layout.html and every other *.html page in fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	base, err := template.New("base").Funcs(TemplateFuncs()).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		if page == "layout.html" {
			continue
		}

		pageTmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(fsys, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		name := page[:len(page)-len(path.Ext(page))]
		templates[name] = pageTmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render executes the named page inside the layout. The page is rendered to
// a buffer first so a template error never produces a half-written response.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
