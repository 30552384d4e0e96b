package processor

import (
	"fmt"
	"testing"
	"time"

	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps scoring deterministic across the suite.
var fixedNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func testProcessor() *Processor {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func testCV(expCount int) *types.CVData {
	cv := &types.CVData{
		PersonalInfo: types.PersonalInfo{
			Name:         "Jane Doe",
			Title:        "Software Engineer",
			Email:        "jane@example.com",
			Summary:      "Engineer with a decade of experience. Built platforms used by millions. Likes simple systems.",
			Technologies: []string{"Go", "React", "PostgreSQL", "Kubernetes", "Redis", "Python", "Terraform", "Rust"},
		},
		Skills: []types.Skill{
			{Name: "Go", Category: "Backend", Level: types.LevelExpert, Years: 8, Highlighted: true, MarketDemand: "high"},
			{Name: "React", Category: "Frontend", Level: types.LevelAdvanced, Years: 5},
		},
	}
	for i := 0; i < expCount; i++ {
		startYear := 2010 + i*2
		exp := types.Experience{
			Company:     fmt.Sprintf("Company%d", i),
			CompanySize: "medium",
			Positions: []types.Position{{
				Title:        "Engineer",
				StartDate:    fmt.Sprintf("%d-01", startYear),
				EndDate:      fmt.Sprintf("%d-12", startYear+1),
				Technologies: []string{"Go", "PostgreSQL"},
				Achievements: []string{
					fmt.Sprintf("Improved throughput by %d%% for 10K users", 10+i),
					"Led migration to Kubernetes",
				},
			}},
		}
		cv.Experiences = append(cv.Experiences, exp)
	}
	cv.Projects = []types.Project{
		{Name: "Exporter", Description: "A PDF export engine. Processes CV data into documents.", Featured: true, HighlightOrder: 1,
			Technologies: []string{"Go", "Redis"}, Metrics: []string{"99.9% uptime"}, Links: []types.Link{{Label: "repo", URL: "https://example.com"}}},
		{Name: "Sidecar", Description: "Internal tooling."},
	}
	return cv
}

func process(t *testing.T, cv *types.CVData, opts types.ProcessingOptions) *types.ProcessedBundle {
	t.Helper()
	tmpl := types.TemplateByID(opts.TemplateID)
	bundle, err := testProcessor().ProcessForTemplate(cv, tmpl, opts)
	require.NoError(t, err)
	require.NotNil(t, bundle)
	return bundle
}

func TestProcessForTemplate_Idempotent(t *testing.T) {
	cv := testCV(4)
	opts := types.ProcessingOptions{TargetAudience: types.AudienceTechnical}

	a := process(t, cv, opts)
	b := process(t, cv, opts)

	require.Equal(t, len(a.Experiences), len(b.Experiences))
	for i := range a.Experiences {
		assert.Equal(t, a.Experiences[i].PriorityScore, b.Experiences[i].PriorityScore)
		assert.Equal(t, a.Experiences[i].Elevation, b.Experiences[i].Elevation)
		assert.Equal(t, a.Experiences[i].KeyAchievements, b.Experiences[i].KeyAchievements)
	}
	assert.Equal(t, a.PersonalInfo.OptimizedSummary, b.PersonalInfo.OptimizedSummary)
}

func TestProcessForTemplate_DoesNotMutateInput(t *testing.T) {
	cv := testCV(3)
	snapshot := cv.Clone()

	_ = process(t, cv, types.ProcessingOptions{})

	assert.Equal(t, snapshot, cv.Clone())
}

func TestProcessForTemplate_ExperienceLimitKeepsTopN(t *testing.T) {
	// 6 experiences, recruiter audience, limit 4: exactly 4 survive, ordered
	// by descending priority score.
	cv := testCV(6)
	opts := types.ProcessingOptions{TargetAudience: types.AudienceRecruiter, ExperienceLimit: 4}

	bundle := process(t, cv, opts)

	require.Len(t, bundle.Experiences, 4)
	for i := 1; i < len(bundle.Experiences); i++ {
		assert.GreaterOrEqual(t, bundle.Experiences[i-1].PriorityScore, bundle.Experiences[i].PriorityScore)
		assert.Equal(t, i+1, bundle.Experiences[i].Priority)
	}
}

func TestProcessForTemplate_ElevationMonotonic(t *testing.T) {
	cv := testCV(6)

	bundle := process(t, cv, types.ProcessingOptions{})

	for i := 1; i < len(bundle.Experiences); i++ {
		assert.GreaterOrEqual(t, bundle.Experiences[i-1].Elevation, bundle.Experiences[i].Elevation)
	}
}

func TestProcessForTemplate_CompactSkillsScenario(t *testing.T) {
	cv := testCV(1)
	cv.Skills = nil
	for i := 0; i < 20; i++ {
		cv.Skills = append(cv.Skills, types.Skill{
			Name: fmt.Sprintf("Skill%d", i), Category: "Backend", Level: types.LevelIntermediate,
		})
	}
	opts := types.ProcessingOptions{
		TargetAudience:    types.AudienceTechnical,
		SkillsDisplayMode: types.SkillsCompact,
	}

	bundle := process(t, cv, opts)

	assert.Len(t, bundle.Skills.Compact.SkillList, 20)
	assert.Equal(t, 3, bundle.Skills.Compact.EstimatedLines)
	assert.Equal(t, types.SkillsCompact, bundle.Skills.RecommendedMode)
}

func TestProcessForTemplate_UnknownEnumsFallBack(t *testing.T) {
	cv := testCV(2)
	opts := types.ProcessingOptions{TargetAudience: "martian", ContentDensity: "dense"}

	bundle := process(t, cv, opts)

	assert.Equal(t, types.AudienceRecruiter, bundle.Metadata.TargetAudience)
}

func TestProcessForTemplate_ExtractsImpactMetrics(t *testing.T) {
	cv := testCV(1)

	bundle := process(t, cv, types.ProcessingOptions{TargetAudience: types.AudienceTechnical})

	require.NotEmpty(t, bundle.Experiences)
	metrics := bundle.Experiences[0].ImpactMetrics
	require.NotEmpty(t, metrics)
	assert.LessOrEqual(t, len(metrics), 3)
	assert.Contains(t, metrics, "10%")
}

func TestProcessForTemplate_KeyTechnologiesCappedAndPrioritized(t *testing.T) {
	cv := testCV(1)

	bundle := process(t, cv, types.ProcessingOptions{TargetAudience: types.AudienceTechnical})

	techs := bundle.PersonalInfo.KeyTechnologies
	assert.LessOrEqual(t, len(techs), 7)
	// Go leads the technical priority list and is present in the input
	assert.Equal(t, "Go", techs[0])
}

type panicExtractor struct{}

func (panicExtractor) ExtractMetrics(string) []string { panic("boom") }

func TestProcessForTemplate_InternalPanicBecomesError(t *testing.T) {
	cv := testCV(2)
	p := New(WithMetricExtractor(panicExtractor{}), WithClock(func() time.Time { return fixedNow }))

	bundle, err := p.ProcessForTemplate(cv, types.TemplateByID(""), types.ProcessingOptions{})

	require.Error(t, err)
	assert.Nil(t, bundle)
	assert.Contains(t, err.Error(), "processing failed")
	assert.Contains(t, err.Error(), "recruiter")
}

func TestSanitize_DefaultsAndLegacyMigration(t *testing.T) {
	cv := &types.CVData{
		Experiences: []types.Experience{{
			Company:   "OldShape",
			Title:     "Engineer",
			StartDate: "2015-01",
			EndDate:   "2017-06",
		}},
	}

	applied := sanitize(cv)

	assert.NotEmpty(t, applied)
	assert.Equal(t, defaultName, cv.PersonalInfo.Name)
	require.Len(t, cv.Experiences[0].Positions, 1)
	assert.Equal(t, "Engineer", cv.Experiences[0].Positions[0].Title)
	assert.Empty(t, cv.Experiences[0].Title)
}

func TestRecommendMode_Fallbacks(t *testing.T) {
	compact := types.ProcessingOptions{SkillsDisplayMode: types.SkillsCategorized, ContentDensity: types.DensityCompact}
	technical := types.ProcessingOptions{SkillsDisplayMode: types.SkillsCategorized, ContentDensity: types.DensityNormal, TargetAudience: types.AudienceTechnical}
	other := types.ProcessingOptions{SkillsDisplayMode: types.SkillsCategorized, ContentDensity: types.DensityNormal, TargetAudience: types.AudienceRecruiter}

	assert.Equal(t, types.SkillsCompact, recommendMode(compact))
	assert.Equal(t, types.SkillsCategorized, recommendMode(technical))
	assert.Equal(t, types.SkillsDetailed, recommendMode(other))
}
