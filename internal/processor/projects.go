package processor

import (
	"math"
	"sort"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Project scoring constants.
const (
	featuredBonus  = 20.0
	maxMetricScore = 15.0
	maxLinkScore   = 10.0
)

// processProjects scores, ranks and annotates projects for layout.
func (p *Processor) processProjects(projects []types.Project, opts types.ProcessingOptions) []types.ProcessedProject {
	techPriorities := technologyPriorities[opts.TargetAudience]
	budget := DescriptionBudget(opts.ContentDensity)

	out := make([]types.ProcessedProject, 0, len(projects))
	for _, proj := range projects {
		pp := types.ProcessedProject{Project: proj}
		pp.PriorityScore = projectScore(proj, techPriorities)
		pp.Elevation = elevationFor(pp.PriorityScore)
		pp.OptimizedDescription = truncateAtSentence(proj.Description, budget)
		pp.EstimatedHeight = projectHeight(pp, opts.ContentDensity)
		out = append(out, pp)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	if opts.ProjectLimit > 0 && len(out) > opts.ProjectLimit {
		out = out[:opts.ProjectLimit]
	}
	for i := range out {
		out[i].Priority = i + 1
	}
	return out
}

// projectScore combines a featured bonus with technology relevance, metrics
// count and link count.
func projectScore(proj types.Project, techPriorities []string) float64 {
	score := 0.0
	if proj.Featured {
		score += featuredBonus
	}
	score += math.Min(maxTechScore, 3*float64(len(matchTechnologies(proj.Technologies, techPriorities, -1))))
	score += math.Min(maxMetricScore, 3*float64(len(proj.Metrics)))
	score += math.Min(maxLinkScore, 2*float64(len(proj.Links)))
	return score
}

// projectHeight estimates the rendered height in layout units.
func projectHeight(pp types.ProcessedProject, density types.ContentDensity) float64 {
	descLines := math.Ceil(float64(len(pp.OptimizedDescription)) / 80)
	techLines := math.Ceil(float64(len(pp.Technologies)) / 8)
	base := 15 + 4*descLines + 4*techLines + 3*float64(len(pp.Metrics))
	return base * density.Multiplier()
}
