package processor

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Experience scoring caps. Each component is bounded so no single term can
// dominate the composite.
const (
	maxRecencyScore     = 30.0
	maxDurationScore    = 20.0
	maxTechScore        = 25.0
	maxAchievementScore = 10.0
	maxPrimaryTechs     = 6
	achievementsCompact = 3
	achievementsNormal  = 4
)

// processExperiences scores, ranks and annotates experiences for layout.
// Ties in score keep input order.
func (p *Processor) processExperiences(exps []types.Experience, opts types.ProcessingOptions) []types.ProcessedExperience {
	now := p.now()
	keywords := achievementKeywords[opts.TargetAudience]
	techPriorities := technologyPriorities[opts.TargetAudience]

	out := make([]types.ProcessedExperience, 0, len(exps))
	for _, e := range exps {
		pe := types.ProcessedExperience{
			Experience:       e,
			OverallDateRange: e.OverallRange(),
		}
		pe.PriorityScore = experienceScore(e, techPriorities, now)
		pe.Elevation = elevationFor(pe.PriorityScore)
		pe.KeyAchievements = selectAchievements(e.AllAchievements(), keywords, opts.ContentDensity)
		pe.PrimaryTechnologies = matchTechnologies(e.AllTechnologies(), techPriorities, maxPrimaryTechs)
		pe.ImpactMetrics = p.extractMetrics(e.AllAchievements())
		pe.EstimatedHeight = experienceHeight(pe, opts.ContentDensity)
		out = append(out, pe)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	if opts.ExperienceLimit > 0 && len(out) > opts.ExperienceLimit {
		out = out[:opts.ExperienceLimit]
	}
	for i := range out {
		out[i].Priority = i + 1
	}
	return out
}

// experienceScore combines recency, duration, company size, technology
// relevance and achievement count into a 0-100+ composite.
func experienceScore(e types.Experience, techPriorities []string, now time.Time) float64 {
	r := e.OverallRange()

	recency := 0.0
	if r.Current {
		recency = maxRecencyScore
	} else if end, ok := types.ParseDate(r.End); ok {
		months := monthsBetween(end, now)
		recency = math.Max(0, maxRecencyScore-float64(months))
	}

	duration := 0.0
	if start, ok := types.ParseDate(r.Start); ok {
		end := now
		if !r.Current {
			if e2, ok := types.ParseDate(r.End); ok {
				end = e2
			}
		}
		duration = math.Min(maxDurationScore, float64(monthsBetween(start, end))/6)
	}

	techScore := math.Min(maxTechScore, 3*float64(len(matchTechnologies(e.AllTechnologies(), techPriorities, -1))))
	achScore := math.Min(maxAchievementScore, 2*float64(len(e.AllAchievements())))

	return recency + duration + companySizeScores[strings.ToLower(e.CompanySize)] + techScore + achScore
}

// elevationFor buckets a priority score into a 1-4 visual elevation.
func elevationFor(score float64) int {
	switch {
	case score >= 90:
		return 4
	case score >= 70:
		return 3
	case score >= 50:
		return 2
	default:
		return 1
	}
}

// selectAchievements keeps the achievements with the highest keyword match
// counts, 3 under compact density and 4 otherwise. Ties keep input order.
func selectAchievements(achievements []string, keywords []string, density types.ContentDensity) []string {
	limit := achievementsNormal
	if density == types.DensityCompact {
		limit = achievementsCompact
	}
	if len(achievements) <= limit {
		return achievements
	}

	type scored struct {
		text    string
		matches int
	}
	ranked := make([]scored, len(achievements))
	for i, a := range achievements {
		ranked[i] = scored{text: a, matches: keywordMatches(a, keywords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].matches > ranked[j].matches
	})

	out := make([]string, limit)
	for i := range out {
		out[i] = ranked[i].text
	}
	return out
}

// matchTechnologies returns technologies matching the priority list first (in
// priority order), then remaining technologies in input order, capped at
// limit (negative limit returns matches only, uncapped).
func matchTechnologies(techs []string, priorities []string, limit int) []string {
	matched := make([]string, 0, len(techs))
	used := make(map[string]bool)
	for _, pri := range priorities {
		for _, t := range techs {
			if used[t] {
				continue
			}
			if strings.EqualFold(t, pri) || strings.Contains(strings.ToLower(t), strings.ToLower(pri)) {
				matched = append(matched, t)
				used[t] = true
			}
		}
	}
	if limit < 0 {
		return matched
	}
	for _, t := range techs {
		if len(matched) >= limit {
			break
		}
		if !used[t] {
			matched = append(matched, t)
			used[t] = true
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// extractMetrics runs the configured extractor over achievements and keeps
// the first few distinct metrics.
func (p *Processor) extractMetrics(achievements []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, a := range achievements {
		for _, m := range p.metrics.ExtractMetrics(a) {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
			if len(out) >= maxMetricsPerEntity {
				return out
			}
		}
	}
	return out
}

// experienceHeight estimates the rendered height in layout units.
func experienceHeight(pe types.ProcessedExperience, density types.ContentDensity) float64 {
	techLines := math.Ceil(float64(len(pe.PrimaryTechnologies)) / 6)
	base := 20 + 4*float64(len(pe.KeyAchievements)) + 4*techLines
	return base * density.Multiplier()
}

func keywordMatches(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

// monthsBetween returns whole months from a to b, never negative.
func monthsBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return 0
	}
	return months
}
