package types

// TargetAudience selects the audience the export is tailored for.
type TargetAudience string

// Known audiences.
const (
	AudienceRecruiter TargetAudience = "recruiter"
	AudienceTechnical TargetAudience = "technical"
	AudienceExecutive TargetAudience = "executive"
)

// ContentDensity controls how tightly content is packed onto the page.
type ContentDensity string

// Known densities.
const (
	DensityCompact  ContentDensity = "compact"
	DensityNormal   ContentDensity = "normal"
	DensitySpacious ContentDensity = "spacious"
)

// Multiplier returns the height multiplier for the density.
func (d ContentDensity) Multiplier() float64 {
	switch d {
	case DensityCompact:
		return 0.8
	case DensitySpacious:
		return 1.2
	default:
		return 1.0
	}
}

// SkillsDisplayMode selects how the skills section is rendered.
type SkillsDisplayMode string

// Known skills display modes.
const (
	SkillsCompact     SkillsDisplayMode = "compact"
	SkillsDetailed    SkillsDisplayMode = "detailed"
	SkillsCategorized SkillsDisplayMode = "categorized"
)

// SectionToggles enables or disables top-level sections in the output.
// The zero value includes everything.
type SectionToggles struct {
	Experiences    *bool `json:"experiences,omitempty"`
	Projects       *bool `json:"projects,omitempty"`
	Skills         *bool `json:"skills,omitempty"`
	Education      *bool `json:"education,omitempty"`
	Certifications *bool `json:"certifications,omitempty"`
	Publications   *bool `json:"publications,omitempty"`
	Speaking       *bool `json:"speaking,omitempty"`
}

// Include reports whether a toggle includes its section (nil means included).
func Include(t *bool) bool {
	return t == nil || *t
}

// ProcessingOptions is the caller-supplied configuration for a processing run.
type ProcessingOptions struct {
	TargetAudience    TargetAudience    `json:"target_audience" validate:"omitempty,oneof=recruiter technical executive"`
	MaxPages          int               `json:"max_pages" validate:"omitempty,min=1,max=10"`
	ContentDensity    ContentDensity    `json:"content_density" validate:"omitempty,oneof=compact normal spacious"`
	IncludeSections   SectionToggles    `json:"include_sections"`
	ExperienceLimit   int               `json:"experience_limit,omitempty" validate:"omitempty,min=1"`
	ProjectLimit      int               `json:"project_limit,omitempty" validate:"omitempty,min=1"`
	SkillsDisplayMode SkillsDisplayMode `json:"skills_display_mode" validate:"omitempty,oneof=compact detailed categorized"`
	TemplateID        string            `json:"template_id,omitempty"`
}

// Normalize applies defaults and coerces out-of-range enum values. Unknown
// audiences and densities fall back to recruiter/normal rather than failing.
func (o *ProcessingOptions) Normalize() {
	switch o.TargetAudience {
	case AudienceRecruiter, AudienceTechnical, AudienceExecutive:
	default:
		o.TargetAudience = AudienceRecruiter
	}
	switch o.ContentDensity {
	case DensityCompact, DensityNormal, DensitySpacious:
	default:
		o.ContentDensity = DensityNormal
	}
	switch o.SkillsDisplayMode {
	case SkillsCompact, SkillsDetailed, SkillsCategorized:
	default:
		o.SkillsDisplayMode = SkillsCategorized
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 2
	}
	if o.TemplateID == "" {
		o.TemplateID = DefaultTemplateID
	}
}
