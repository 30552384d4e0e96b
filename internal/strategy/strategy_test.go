package strategy

import (
	"testing"

	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCV() *types.CVData {
	return &types.CVData{
		PersonalInfo: types.PersonalInfo{Name: "Jane Doe"},
		Experiences: []types.Experience{
			{Company: "OldCo", Positions: []types.Position{{Title: "Engineer", StartDate: "2012-01", EndDate: "2014-06"}}},
			{Company: "MidCo", Positions: []types.Position{{Title: "Senior Engineer", StartDate: "2014-07", EndDate: "2018-03"}}},
			{Company: "NewCo", Positions: []types.Position{{Title: "Staff Engineer", StartDate: "2018-04"}}},
			{Company: "SideCo", Positions: []types.Position{{Title: "Consultant", StartDate: "2010-02", EndDate: "2011-12"}}},
			{Company: "GapCo", Positions: []types.Position{{Title: "Developer", StartDate: "2008-01", EndDate: "2009-12"}}},
			{Company: "FirstCo", Positions: []types.Position{{Title: "Junior Developer", StartDate: "2006-03", EndDate: "2007-12"}}},
		},
		Projects: []types.Project{
			{Name: "Alpha", Featured: true, HighlightOrder: 2},
			{Name: "Beta", Featured: false},
			{Name: "Gamma", Featured: true, HighlightOrder: 5},
		},
		Skills: []types.Skill{
			{Name: "Go", Category: "Backend", Level: types.LevelExpert},
			{Name: "Mentoring", Category: "Leadership", Level: types.LevelAdvanced},
			{Name: "Photography", Category: "Creative", Level: types.LevelIntermediate},
		},
		Publications: []types.Publication{{Title: "Paper"}},
		Speaking:     []types.Speaking{{Title: "Talk"}},
	}
}

func TestApply_RecruiterHidesPublicationsAndSpeaking(t *testing.T) {
	cv := sampleCV()

	out := Apply(cv, ForAudience(types.AudienceRecruiter))

	assert.Nil(t, out.Publications)
	assert.Nil(t, out.Speaking)
	// Source data untouched
	assert.Len(t, cv.Publications, 1)
	assert.Len(t, cv.Speaking, 1)
}

func TestApply_RecentFocusSortsAndCaps(t *testing.T) {
	cv := sampleCV()

	out := Apply(cv, ForAudience(types.AudienceRecruiter))

	require.Len(t, out.Experiences, 5)
	assert.Equal(t, "NewCo", out.Experiences[0].Company)
	assert.Equal(t, "MidCo", out.Experiences[1].Company)
	// The oldest experience falls off the end
	for _, e := range out.Experiences {
		assert.NotEqual(t, "FirstCo", e.Company)
	}
}

func TestApply_ImpactSelectionKeepsFeaturedByHighlightOrder(t *testing.T) {
	cv := sampleCV()

	out := Apply(cv, ForAudience(types.AudienceRecruiter))

	require.Len(t, out.Projects, 2)
	assert.Equal(t, "Gamma", out.Projects[0].Name)
	assert.Equal(t, "Alpha", out.Projects[1].Name)
}

func TestApply_TechnicalEmphasisFiltersSkillCategories(t *testing.T) {
	cv := sampleCV()

	out := Apply(cv, ForAudience(types.AudienceTechnical))

	require.Len(t, out.Skills, 1)
	assert.Equal(t, "Go", out.Skills[0].Name)
}

func TestApply_BusinessEmphasisKeepsButReorders(t *testing.T) {
	cv := sampleCV()

	out := Apply(cv, ForAudience(types.AudienceExecutive))

	require.Len(t, out.Skills, 3)
	assert.Equal(t, "Mentoring", out.Skills[0].Name)
}

func TestApply_ExecutiveHidesCertifications(t *testing.T) {
	cv := sampleCV()
	cv.Certifications = []types.Certification{{Name: "Cert"}}

	out := Apply(cv, ForAudience(types.AudienceExecutive))

	assert.Nil(t, out.Certifications)
}

func TestForAudience_UnknownFallsBackToRecruiter(t *testing.T) {
	s := ForAudience(types.TargetAudience("martian"))
	assert.Equal(t, types.AudienceRecruiter, s.Audience)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	cv := sampleCV()
	originalFirst := cv.Experiences[0].Company
	originalSkills := len(cv.Skills)

	_ = Apply(cv, ForAudience(types.AudienceTechnical))

	assert.Equal(t, originalFirst, cv.Experiences[0].Company)
	assert.Len(t, cv.Skills, originalSkills)
}
