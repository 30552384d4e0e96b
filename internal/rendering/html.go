// Package rendering turns a processed bundle into a standalone HTML document
// and prints it to PDF through a headless browser.
package rendering

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/Slavigrad/cv-export/internal/types"
)

//go:embed template.html
var templateHTML string

// pageData is the root object the HTML template renders.
type pageData struct {
	Bundle     *types.ProcessedBundle
	Template   types.Template
	Density    types.ContentDensity
	SkillsMode types.SkillsDisplayMode
	HasSkills  bool
}

// HTMLRenderer renders processed bundles to self-contained HTML documents.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("cv").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cv template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the HTML document for a bundle. The skills section uses
// the bundle's recommended display mode.
func (r *HTMLRenderer) Render(bundle *types.ProcessedBundle, tmpl types.Template, density types.ContentDensity) (string, error) {
	data := pageData{
		Bundle:     bundle,
		Template:   tmpl,
		Density:    density,
		SkillsMode: bundle.Skills.RecommendedMode,
		HasSkills:  len(bundle.Skills.Compact.SkillList) > 0,
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render cv html: %w", err)
	}
	return buf.String(), nil
}
