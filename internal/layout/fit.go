// Package layout analyzes whether processed content fits the page space a
// template offers and recommends adjustments when it does not.
package layout

import (
	"math"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Fit thresholds and reduction targets. Ratios below warnThreshold draw a
// density recommendation; below reduceThreshold a hard content reduction.
const (
	warnThreshold   = 0.9
	reduceThreshold = 0.8

	reducedExperienceCap = 4
	reducedProjectCap    = 3

	headerHeight     = 25.0
	extraEntryHeight = 8.0
)

// AnalyzeFit compares the bundle's estimated total height against the
// template's available height. Pure function; no side effects.
func AnalyzeFit(b *types.ProcessedBundle, tmpl types.Template) types.FitAnalysis {
	total := headerHeight
	expTotal := 0.0
	for _, e := range b.Experiences {
		expTotal += e.EstimatedHeight
	}
	projTotal := 0.0
	for _, p := range b.Projects {
		projTotal += p.EstimatedHeight
	}
	skillsTotal := skillsHeight(b.Skills)
	extras := float64(len(b.Education)+len(b.Certifications)+len(b.Publications)+len(b.Speaking)+len(b.Languages)) * extraEntryHeight
	total += expTotal + projTotal + skillsTotal + extras

	available := tmpl.AvailableHeight()
	ratio := 1.0
	if total > 0 {
		ratio = math.Min(1, available/total)
	}

	fit := types.FitAnalysis{
		TotalEstimatedHeight: total,
		AvailableHeight:      available,
		FitRatio:             ratio,
	}
	if ratio >= warnThreshold {
		return fit
	}

	fit.OverflowSections = overflowSections(expTotal, projTotal, skillsTotal, available)
	fit.Recommendations = append(fit.Recommendations,
		"content exceeds available space; consider compact density")
	if ratio < reduceThreshold {
		fit.Recommendations = append(fit.Recommendations,
			"reduce content: cap experiences to 4, projects to 3, use compact skills")
	}
	return fit
}

// ReduceOptions applies the hard content reduction to a set of processing
// options, for callers that act on the recommendation.
func ReduceOptions(opts types.ProcessingOptions) types.ProcessingOptions {
	if opts.ExperienceLimit == 0 || opts.ExperienceLimit > reducedExperienceCap {
		opts.ExperienceLimit = reducedExperienceCap
	}
	if opts.ProjectLimit == 0 || opts.ProjectLimit > reducedProjectCap {
		opts.ProjectLimit = reducedProjectCap
	}
	opts.SkillsDisplayMode = types.SkillsCompact
	return opts
}

// skillsHeight picks the height of the recommended rendering.
func skillsHeight(s types.ProcessedSkills) float64 {
	switch s.RecommendedMode {
	case types.SkillsCompact:
		return s.Compact.EstimatedHeight
	case types.SkillsDetailed:
		return s.Detailed.EstimatedHeight
	default:
		return s.Categorized.EstimatedHeight
	}
}

// overflowSections names the sections taking an outsized share of the
// available space, largest first.
func overflowSections(exp, proj, skills, available float64) []string {
	budget := available / 3
	var out []string
	for _, s := range []struct {
		name   string
		height float64
	}{
		{"experiences", exp},
		{"projects", proj},
		{"skills", skills},
	} {
		if s.height > budget {
			out = append(out, s.name)
		}
	}
	return out
}
