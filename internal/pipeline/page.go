package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for page templates.
var (
	ErrTemplateParse = errors.New("template parsing failed")
	ErrPageRender    = errors.New("page rendering failed")
)

// PageRenderer executes an html/template page. Values are escaped by
// context; only fields typed template.HTML (the rendered chapter body)
// are emitted verbatim.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses tmplContent under name.
// Returns ErrTemplateParse if the template cannot be parsed.
func NewPageRenderer(name, tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Name returns the template name.
func (r *PageRenderer) Name() string {
	return r.tmpl.Name()
}

// Render executes the template with data.
// Returns ErrPageRender if execution fails.
func (r *PageRenderer) Render(ctx context.Context, data any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPageRender, r.tmpl.Name(), err)
	}
	return buf.String(), nil
}
