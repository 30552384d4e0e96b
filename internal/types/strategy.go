package types

// ExperienceFocus selects how experiences are filtered and ordered.
type ExperienceFocus string

// Known experience focus policies.
const (
	FocusRecent      ExperienceFocus = "recent"
	FocusRelevant    ExperienceFocus = "relevant"
	FocusProgressive ExperienceFocus = "progressive"
)

// ProjectSelection selects which projects survive strategy application.
type ProjectSelection string

// Known project selection policies.
const (
	SelectImpact    ProjectSelection = "impact"
	SelectTechnical ProjectSelection = "technical"
)

// SkillEmphasis selects which skill categories are emphasized.
type SkillEmphasis string

// Known skill emphasis policies.
const (
	EmphasisTechnical SkillEmphasis = "technical"
	EmphasisBusiness  SkillEmphasis = "business"
)

// ContentStrategy maps an audience to visibility, ordering and emphasis rules.
// Section weights are advisory ordering hints; HiddenSections is a hard
// removal list applied last.
type ContentStrategy struct {
	Audience            TargetAudience     `json:"audience"`
	SectionWeights      map[string]float64 `json:"section_weights"`
	HiddenSections      []string           `json:"hidden_sections,omitempty"`
	HighlightedSections []string           `json:"highlighted_sections,omitempty"`
	ExperienceFocus     ExperienceFocus    `json:"experience_focus"`
	ProjectSelection    ProjectSelection   `json:"project_selection"`
	SkillEmphasis       SkillEmphasis      `json:"skill_emphasis"`
}
