package processor

import (
	"math"
	"sort"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Skill scoring and rendering limits.
const (
	highlightBonus     = 20.0
	maxYearsScore      = 10.0
	highDemandBonus    = 8.0
	trendingBonus      = 5.0
	compactPerLine     = 8
	compactListCap     = 20
	detailedCap        = 15
	categorizedPerCat  = 8
	categorizedMaxCats = 6
)

// processSkills ranks skills by a composite score and produces the three
// alternate renderings with height estimates.
func (p *Processor) processSkills(skills []types.Skill, opts types.ProcessingOptions) types.ProcessedSkills {
	ranked := append([]types.Skill(nil), skills...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return skillScore(ranked[i]) > skillScore(ranked[j])
	})

	mult := opts.ContentDensity.Multiplier()
	out := types.ProcessedSkills{
		Compact:         compactSkills(ranked, mult),
		Detailed:        detailedSkills(ranked, mult),
		Categorized:     categorizedSkills(ranked, mult),
		RecommendedMode: recommendMode(opts),
	}
	return out
}

// skillScore composes highlight, level, years, market demand and trending
// bonuses.
func skillScore(s types.Skill) float64 {
	score := s.Level.Weight()
	if s.Highlighted {
		score += highlightBonus
	}
	score += math.Min(maxYearsScore, s.Years)
	if s.MarketDemand == "high" {
		score += highDemandBonus
	}
	if s.Trending {
		score += trendingBonus
	}
	return score
}

func compactSkills(ranked []types.Skill, mult float64) types.CompactSkills {
	n := len(ranked)
	if n > compactListCap {
		n = compactListCap
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = ranked[i].Name
	}
	lines := int(math.Ceil(float64(n) / compactPerLine))
	return types.CompactSkills{
		SkillList:       names,
		EstimatedLines:  lines,
		EstimatedHeight: (5 + 4*float64(lines)) * mult,
	}
}

func detailedSkills(ranked []types.Skill, mult float64) types.DetailedSkills {
	n := len(ranked)
	if n > detailedCap {
		n = detailedCap
	}
	lines := make([]types.SkillLine, n)
	for i := 0; i < n; i++ {
		lines[i] = types.SkillLine{Name: ranked[i].Name, Level: ranked[i].Level, Years: ranked[i].Years}
	}
	return types.DetailedSkills{
		Skills:          lines,
		EstimatedHeight: (5 + 5*float64(n)) * mult,
	}
}

func categorizedSkills(ranked []types.Skill, mult float64) types.CategorizedSkills {
	byCat := make(map[string][]string)
	var order []string
	for _, s := range ranked {
		if len(byCat[s.Category]) >= categorizedPerCat {
			continue
		}
		if _, seen := byCat[s.Category]; !seen {
			if len(order) >= categorizedMaxCats {
				continue
			}
			order = append(order, s.Category)
		}
		byCat[s.Category] = append(byCat[s.Category], s.Name)
	}

	cats := make([]types.SkillCategory, 0, len(order))
	total := 0
	for _, cat := range order {
		cats = append(cats, types.SkillCategory{Category: cat, Skills: byCat[cat]})
		total += len(byCat[cat])
	}
	return types.CategorizedSkills{
		Categories:      cats,
		EstimatedHeight: (float64(len(cats))*8 + float64(total)*2) * mult,
	}
}

// recommendMode resolves the final skills display mode. Compact and detailed
// requests are honored as-is; a categorized request falls back by density and
// audience.
func recommendMode(opts types.ProcessingOptions) types.SkillsDisplayMode {
	if opts.SkillsDisplayMode != types.SkillsCategorized {
		return opts.SkillsDisplayMode
	}
	if opts.ContentDensity == types.DensityCompact {
		return types.SkillsCompact
	}
	if opts.TargetAudience == types.AudienceTechnical {
		return types.SkillsCategorized
	}
	return types.SkillsDetailed
}
