// Package strategy maps target audiences to content visibility, ordering and
// emphasis rules and applies them to CV data.
package strategy

import "github.com/Slavigrad/cv-export/internal/types"

// Section name constants used in weights and hidden-section lists.
const (
	SectionExperiences    = "experiences"
	SectionProjects       = "projects"
	SectionSkills         = "skills"
	SectionEducation      = "education"
	SectionCertifications = "certifications"
	SectionPublications   = "publications"
	SectionSpeaking       = "speaking"
	SectionLanguages      = "languages"
	SectionInterests      = "interests"
)

// technicalCategories is the allow-list applied by the technical skill
// emphasis policy.
var technicalCategories = map[string]bool{
	"Frontend": true,
	"Backend":  true,
	"Database": true,
	"DevOps":   true,
	"Tools":    true,
}

// businessCategories are surfaced first under the business emphasis policy.
var businessCategories = map[string]bool{
	"Leadership":    true,
	"Management":    true,
	"Communication": true,
	"Strategy":      true,
	"Business":      true,
}

// seniorityKeywords score position titles for the progressive experience
// focus. Tunable configuration, not load-bearing logic.
var seniorityKeywords = map[string]float64{
	"chief":     10,
	"cto":       10,
	"vp":        9,
	"director":  8,
	"head":      7,
	"principal": 6,
	"staff":     5,
	"lead":      4,
	"senior":    3,
	"manager":   3,
}

// audienceTechKeywords score experience technologies for the relevant
// experience focus, per audience.
var audienceTechKeywords = map[types.TargetAudience][]string{
	types.AudienceRecruiter: {"react", "typescript", "node", "python", "aws", "agile"},
	types.AudienceTechnical: {"go", "kubernetes", "docker", "postgresql", "redis", "grpc", "typescript", "react", "terraform", "kafka"},
	types.AudienceExecutive: {"architecture", "cloud", "platform", "aws", "strategy"},
}

// presets are the built-in content strategies per audience.
var presets = map[types.TargetAudience]types.ContentStrategy{
	types.AudienceRecruiter: {
		Audience: types.AudienceRecruiter,
		SectionWeights: map[string]float64{
			SectionExperiences: 1.0,
			SectionSkills:      0.9,
			SectionProjects:    0.7,
			SectionEducation:   0.5,
		},
		HiddenSections:      []string{SectionPublications, SectionSpeaking},
		HighlightedSections: []string{SectionExperiences, SectionSkills},
		ExperienceFocus:     types.FocusRecent,
		ProjectSelection:    types.SelectImpact,
		SkillEmphasis:       types.EmphasisBusiness,
	},
	types.AudienceTechnical: {
		Audience: types.AudienceTechnical,
		SectionWeights: map[string]float64{
			SectionProjects:    1.0,
			SectionSkills:      1.0,
			SectionExperiences: 0.8,
			SectionEducation:   0.3,
		},
		HighlightedSections: []string{SectionProjects, SectionSkills},
		ExperienceFocus:     types.FocusRelevant,
		ProjectSelection:    types.SelectTechnical,
		SkillEmphasis:       types.EmphasisTechnical,
	},
	types.AudienceExecutive: {
		Audience: types.AudienceExecutive,
		SectionWeights: map[string]float64{
			SectionExperiences: 1.0,
			SectionProjects:    0.8,
			SectionSkills:      0.5,
			SectionEducation:   0.4,
		},
		HiddenSections:      []string{SectionCertifications},
		HighlightedSections: []string{SectionExperiences},
		ExperienceFocus:     types.FocusProgressive,
		ProjectSelection:    types.SelectImpact,
		SkillEmphasis:       types.EmphasisBusiness,
	},
}

// ForAudience returns the built-in strategy for an audience. Unknown
// audiences fall back to the recruiter preset.
func ForAudience(aud types.TargetAudience) types.ContentStrategy {
	if s, ok := presets[aud]; ok {
		return s
	}
	return presets[types.AudienceRecruiter]
}
