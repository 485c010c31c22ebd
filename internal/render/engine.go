package render

import (
	"bytes"
	"text/template"
)

// Engine substitutes a render context into layout text. Implementations are
// total: malformed templates are absorbed by best-effort substitution, never
// surfaced as errors.
type Engine interface {
	Render(layout string, data map[string]any) string
}

// TemplateEngine is the default Engine, backed by text/template.
type TemplateEngine struct{}

// Render parses and executes the layout against data. A layout that fails to
// parse renders as its own source text; an execution failure yields whatever
// output was produced up to that point.
func (TemplateEngine) Render(layout string, data map[string]any) string {
	tpl, err := template.New("layout").Option("missingkey=zero").Parse(layout)
	if err != nil {
		return layout
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return buf.String()
	}
	return buf.String()
}
