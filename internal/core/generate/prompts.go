package generate

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptsFS embed.FS

// Prompts holds the parsed prompt templates.
type Prompts struct {
	templates *template.Template
}

// NewPrompts parses all embedded prompt templates.
func NewPrompts() (*Prompts, error) {
	tmpl, err := template.ParseFS(promptsFS, "prompts/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	return &Prompts{templates: tmpl}, nil
}

// Caption renders the social caption prompt.
func (p *Prompts) Caption(req CaptionRequest) (string, error) {
	return p.render("caption.tmpl", req)
}

// Scene renders the text-to-video prompt expansion prompt.
func (p *Prompts) Scene(req PromptRequest) (string, error) {
	return p.render("scene.tmpl", req)
}

func (p *Prompts) render(name string, data any) (string, error) {
	tmpl := p.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("prompt template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %q: %w", name, err)
	}
	return buf.String(), nil
}
