package strategy

import (
	"sort"
	"strings"

	"github.com/Slavigrad/cv-export/internal/types"
)

// recentExperienceCap bounds how many experiences the recent focus keeps.
const recentExperienceCap = 5

// Apply filters and reorders a CV according to a content strategy. The input
// is never mutated; the result is built from a deep copy. Hidden sections are
// removed last and unconditionally.
func Apply(cv *types.CVData, s types.ContentStrategy) *types.CVData {
	out := cv.Clone()

	out.Experiences = focusExperiences(out.Experiences, s)
	out.Projects = selectProjects(out.Projects, s.ProjectSelection)
	out.Skills = emphasizeSkills(out.Skills, s.SkillEmphasis)

	for _, section := range s.HiddenSections {
		hideSection(out, section)
	}
	return out
}

func focusExperiences(exps []types.Experience, s types.ContentStrategy) []types.Experience {
	switch s.ExperienceFocus {
	case types.FocusRecent:
		sort.SliceStable(exps, func(i, j int) bool {
			return exps[i].OverallRange().Start > exps[j].OverallRange().Start
		})
		if len(exps) > recentExperienceCap {
			exps = exps[:recentExperienceCap]
		}
	case types.FocusRelevant:
		keywords := audienceTechKeywords[s.Audience]
		sort.SliceStable(exps, func(i, j int) bool {
			return techMatchCount(exps[i].AllTechnologies(), keywords) > techMatchCount(exps[j].AllTechnologies(), keywords)
		})
	case types.FocusProgressive:
		sort.SliceStable(exps, func(i, j int) bool {
			return seniorityScore(exps[i]) > seniorityScore(exps[j])
		})
	}
	return exps
}

func selectProjects(projects []types.Project, sel types.ProjectSelection) []types.Project {
	switch sel {
	case types.SelectImpact:
		var featured []types.Project
		for _, p := range projects {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		sort.SliceStable(featured, func(i, j int) bool {
			return featured[i].HighlightOrder > featured[j].HighlightOrder
		})
		return featured
	case types.SelectTechnical:
		sort.SliceStable(projects, func(i, j int) bool {
			return len(projects[i].Technologies) > len(projects[j].Technologies)
		})
		return projects
	}
	return projects
}

func emphasizeSkills(skills []types.Skill, emph types.SkillEmphasis) []types.Skill {
	switch emph {
	case types.EmphasisTechnical:
		// Hard allow-list: only technical categories survive.
		var kept []types.Skill
		for _, sk := range skills {
			if technicalCategories[sk.Category] {
				kept = append(kept, sk)
			}
		}
		return kept
	case types.EmphasisBusiness:
		// Soft emphasis: business categories surface first, nothing is dropped.
		sort.SliceStable(skills, func(i, j int) bool {
			return businessCategories[skills[i].Category] && !businessCategories[skills[j].Category]
		})
		return skills
	}
	return skills
}

func hideSection(cv *types.CVData, section string) {
	switch section {
	case SectionExperiences:
		cv.Experiences = nil
	case SectionProjects:
		cv.Projects = nil
	case SectionSkills:
		cv.Skills = nil
	case SectionEducation:
		cv.Education = nil
	case SectionCertifications:
		cv.Certifications = nil
	case SectionPublications:
		cv.Publications = nil
	case SectionSpeaking:
		cv.Speaking = nil
	case SectionLanguages:
		cv.Languages = nil
	case SectionInterests:
		cv.Interests = nil
	}
}

func techMatchCount(techs []string, keywords []string) int {
	count := 0
	for _, tech := range techs {
		techLower := strings.ToLower(tech)
		for _, kw := range keywords {
			if strings.Contains(techLower, kw) {
				count++
				break
			}
		}
	}
	return count
}

func seniorityScore(exp types.Experience) float64 {
	best := 0.0
	for _, p := range exp.Positions {
		title := strings.ToLower(p.Title)
		for kw, w := range seniorityKeywords {
			if strings.Contains(title, kw) && w > best {
				best = w
			}
		}
	}
	return best
}
