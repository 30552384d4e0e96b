package processor

import "github.com/Slavigrad/cv-export/internal/types"

// Defaults for required personal-info fields. Missing values are filled
// silently and never surfaced as errors.
const (
	defaultName    = "Unnamed Candidate"
	defaultTitle   = "Software Professional"
	defaultSummary = "Experienced professional with a track record of delivering results."
	defaultEmail   = "not-provided@example.com"
)

// sanitize fills required-but-missing personal-info fields and migrates
// legacy single-position experiences into the positions-array shape. The CV
// is expected to be a private copy; sanitize mutates it in place.
func sanitize(cv *types.CVData) []string {
	var applied []string

	pi := &cv.PersonalInfo
	if pi.Name == "" {
		pi.Name = defaultName
		applied = append(applied, "defaulted personal name")
	}
	if pi.Title == "" {
		pi.Title = defaultTitle
		applied = append(applied, "defaulted professional title")
	}
	if pi.Summary == "" {
		pi.Summary = defaultSummary
		applied = append(applied, "defaulted summary")
	}
	if pi.Email == "" {
		pi.Email = defaultEmail
		applied = append(applied, "defaulted email")
	}

	migrated := 0
	for i := range cv.Experiences {
		if migrateLegacy(&cv.Experiences[i]) {
			migrated++
		}
	}
	if migrated > 0 {
		applied = append(applied, "migrated legacy experience shape")
	}
	return applied
}

// migrateLegacy converts the single-position legacy shape into a one-element
// Positions slice, clearing the top-level fields.
func migrateLegacy(e *types.Experience) bool {
	if !e.IsLegacy() {
		return false
	}
	e.Positions = []types.Position{{
		Title:            e.Title,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		Description:      e.Description,
		Technologies:     e.Technologies,
		Responsibilities: e.Responsibilities,
		Achievements:     e.Achievements,
	}}
	e.Title = ""
	e.StartDate = ""
	e.EndDate = ""
	e.Description = ""
	e.Technologies = nil
	e.Responsibilities = nil
	e.Achievements = nil
	return true
}
