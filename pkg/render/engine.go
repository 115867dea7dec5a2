// Package render wraps the template capability used for every file
// path, file content, default value and cleanup path in a run. An
// undefined variable or a syntax error is always a failure, never
// silently rendered as an empty string.
package render

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Keats/kickstart/pkg/errors"
	"github.com/Keats/kickstart/pkg/schema"
)

// Engine renders one-off templates against a resolved Context
type Engine struct {
	funcs template.FuncMap
}

// NewEngine creates an engine with the case-conversion filters registered
func NewEngine() *Engine {
	return &Engine{funcs: Filters()}
}

// Render renders a template string against the context. The name is
// used in error messages and should identify the offending path or
// variable.
func (e *Engine) Render(name, text string, ctx *schema.Context) (string, error) {
	tpl, err := template.New(name).Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderFailed, "invalid template in %s", name).
			WithDetail("template", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, ctx.TemplateData()); err != nil {
		return "", errors.Wrapf(err, errors.ErrRenderFailed, "rendering %s", name).
			WithDetail("template", name)
	}

	return buf.String(), nil
}

// RenderPath renders a source-relative path. Because some filesystems
// forbid the pipe character, path templates may use `$$` as the filter
// separator; both forms render identically. Content is never rewritten.
func (e *Engine) RenderPath(relPath string, ctx *schema.Context) (string, error) {
	return e.Render(relPath, RewriteFilterDelims(relPath), ctx)
}

// RewriteFilterDelims rewrites the alternate `$$` filter separator to
// the standard operator. Textual pre-pass, not a template feature.
func RewriteFilterDelims(pathTemplate string) string {
	return strings.ReplaceAll(pathTemplate, "$$", "|")
}
