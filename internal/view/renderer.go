// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer renders a named page with data.
type Renderer interface {
	Render(w io.Writer, page string, data Page) error
}

type htmlRenderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	PageHome,
	PageAbout,
	PageLogin,
	PageUpload,
	PageFiles,
	PageNotFound,
	PageError,
}

var funcs = template.FuncMap{
	"imageURL": func(name string) string {
		return "/uploads/" + url.PathEscape(name)
	},
	"humanSize": humanSize,
}

// NewRenderer parses the embedded templates. Every page is combined with the
// layout into its own template set.
func NewRenderer() (Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).
			ParseFS(templatesFS, layoutFile, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &htmlRenderer{pages: pages}, nil
}

func (r *htmlRenderer) Render(w io.Writer, page string, data Page) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	return tmpl.ExecuteTemplate(w, "layout", data)
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
