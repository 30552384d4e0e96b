package types

// DefaultTemplateID is used when the caller does not name a template or names
// an unknown one.
const DefaultTemplateID = "modern-two-column"

// mmToUnit converts millimetres of page space to synthetic layout units, the
// same unit height estimation produces.
const mmToUnit = 0.35

// Template describes the page geometry of a PDF layout.
type Template struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PageFormat     string  `json:"page_format"` // a4 or letter
	PageHeightMm   float64 `json:"page_height_mm"`
	PageWidthMm    float64 `json:"page_width_mm"`
	TopMarginMm    float64 `json:"top_margin_mm"`
	BottomMarginMm float64 `json:"bottom_margin_mm"`
	SideMarginMm   float64 `json:"side_margin_mm"`
	Columns        int     `json:"columns"`
	MaxPages       int     `json:"max_pages"`
}

// AvailableHeight returns the usable layout units across all pages.
func (t Template) AvailableHeight() float64 {
	perPage := (t.PageHeightMm - t.TopMarginMm - t.BottomMarginMm) * mmToUnit
	return perPage * float64(t.MaxPages)
}

var templates = map[string]Template{
	"modern-two-column": {
		ID:             "modern-two-column",
		Name:           "Modern Two Column",
		PageFormat:     "a4",
		PageHeightMm:   297,
		PageWidthMm:    210,
		TopMarginMm:    15,
		BottomMarginMm: 15,
		SideMarginMm:   12,
		Columns:        2,
		MaxPages:       2,
	},
	"classic-single": {
		ID:             "classic-single",
		Name:           "Classic Single Column",
		PageFormat:     "a4",
		PageHeightMm:   297,
		PageWidthMm:    210,
		TopMarginMm:    20,
		BottomMarginMm: 20,
		SideMarginMm:   18,
		Columns:        1,
		MaxPages:       3,
	},
}

// TemplateByID looks up a built-in template, falling back to the default for
// unknown IDs.
func TemplateByID(id string) Template {
	if t, ok := templates[id]; ok {
		return t
	}
	return templates[DefaultTemplateID]
}

// TemplateIDs lists the built-in template identifiers.
func TemplateIDs() []string {
	out := make([]string, 0, len(templates))
	for id := range templates {
		out = append(out, id)
	}
	return out
}
