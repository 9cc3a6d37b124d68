package web

import (
	"fmt"
	"html/template"
	"io"
)

// Renderer produces HTML for a named view. The handlers only depend on this
// interface; the template engine behind it is a collaborator they never see.
type Renderer interface {
	Render(w io.Writer, view string, data interface{}) error
}

// HTMLRenderer renders html/template views parsed from a glob. Views are
// addressed by file name ("index.html", "post.html", ...).
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer(glob string) (*HTMLRenderer, error) {
	tmpl, err := template.ParseGlob(glob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, view string, data interface{}) error {
	return r.tmpl.ExecuteTemplate(w, view, data)
}
