package cvdata

import (
	"testing"
	"time"

	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedCVIsValid(t *testing.T) {
	cv := Default()

	assert.Equal(t, "Lubomír Hradec", cv.PersonalInfo.Name)
	assert.NotEmpty(t, cv.Experiences)
	assert.NotEmpty(t, cv.Projects)
	assert.NotEmpty(t, cv.Skills)
}

func TestParse_RejectsMissingPersonalInfo(t *testing.T) {
	_, err := Parse([]byte(`{"experiences": []}`))

	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Violations)
}

func TestParse_RejectsBadDateFormat(t *testing.T) {
	doc := `{
		"personal_info": {"name": "X"},
		"experiences": [{"company": "Y", "positions": [{"title": "Dev", "start_date": "March 2020"}]}]
	}`

	_, err := Parse([]byte(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_date")
}

func TestParse_RejectsUnknownSkillLevel(t *testing.T) {
	doc := `{
		"personal_info": {"name": "X"},
		"skills": [{"name": "Go", "category": "Backend", "level": "wizard"}]
	}`

	_, err := Parse([]byte(doc))

	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read cv file")
}

func TestStaticProvider_ReturnsCopies(t *testing.T) {
	provider := NewStaticProvider(Default(), nil)

	exps := provider.Experiences()
	require.NotEmpty(t, exps)
	exps[0].Company = "mutated"

	assert.NotEqual(t, "mutated", provider.Experiences()[0].Company)
}

func TestStats_Aggregates(t *testing.T) {
	now := func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }
	cv := &types.CVData{
		PersonalInfo: types.PersonalInfo{Name: "X", Technologies: []string{"Go"}},
		Experiences: []types.Experience{
			{Company: "A", Positions: []types.Position{{Title: "Dev", StartDate: "2016-03", EndDate: "2020-03", Technologies: []string{"Go", "React"}}}},
			{Company: "B", Positions: []types.Position{{Title: "Dev", StartDate: "2020-04", Technologies: []string{"Kubernetes"}}}},
		},
		Projects: []types.Project{{Name: "P", Technologies: []string{"Rust"}}},
	}
	provider := NewStaticProvider(cv, now)

	stats := provider.Stats()

	assert.Equal(t, 2, stats.TotalCompanies)
	assert.Equal(t, 1, stats.TotalProjects)
	assert.Equal(t, 4, stats.TotalTechnologies) // Go, React, Kubernetes, Rust
	assert.InDelta(t, 10.0, stats.TotalYears, 0.1)
}
