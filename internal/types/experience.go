package types

import (
	"time"
)

// DateLayout is the wire format for CV dates (year and month).
const DateLayout = "2006-01"

// Experience represents employment at a single company, holding one or more
// positions. Legacy single-position records carry their fields at the top
// level and are migrated into Positions during sanitization.
type Experience struct {
	Company     string     `json:"company"`
	CompanySize string     `json:"company_size,omitempty"` // startup, small, medium, large, enterprise
	Location    string     `json:"location,omitempty"`
	Positions   []Position `json:"positions,omitempty"`

	// Legacy single-position shape. Empty once sanitized.
	Title            string   `json:"title,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Description      string   `json:"description,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
}

// Position represents a single role held within an experience.
type Position struct {
	Title            string   `json:"title"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date,omitempty"` // empty means current
	Description      string   `json:"description,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Achievements     []string `json:"achievements,omitempty"`
	TeamSize         int      `json:"team_size,omitempty"`
}

// DateRange is a derived start/end pair. Current reports whether the range is
// open-ended (at least one position has no end date).
type DateRange struct {
	Start   string `json:"start"`
	End     string `json:"end,omitempty"`
	Current bool   `json:"current"`
}

// IsLegacy reports whether the experience uses the single-position shape.
func (e *Experience) IsLegacy() bool {
	return len(e.Positions) == 0 && (e.Title != "" || e.StartDate != "")
}

// OverallRange derives the combined date range across all positions:
// min(start), max(end), open-ended whenever any position lacks an end date.
func (e *Experience) OverallRange() DateRange {
	var r DateRange
	for _, p := range e.Positions {
		if r.Start == "" || p.StartDate < r.Start {
			r.Start = p.StartDate
		}
		if p.EndDate == "" {
			r.Current = true
			continue
		}
		if p.EndDate > r.End {
			r.End = p.EndDate
		}
	}
	if r.Current {
		r.End = ""
	}
	return r
}

// AllTechnologies returns the union of technologies across positions,
// preserving first-seen order.
func (e *Experience) AllTechnologies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range e.Positions {
		for _, t := range p.Technologies {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// AllAchievements returns achievements across positions, most recent
// position first (positions are expected sorted newest first).
func (e *Experience) AllAchievements() []string {
	var out []string
	for _, p := range e.Positions {
		out = append(out, p.Achievements...)
	}
	return out
}

// ParseDate parses a CV date string. An empty string or parse failure
// returns the zero time and false.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (e Experience) clone() Experience {
	out := e
	out.Positions = make([]Position, len(e.Positions))
	for i, p := range e.Positions {
		q := p
		q.Technologies = append([]string(nil), p.Technologies...)
		q.Responsibilities = append([]string(nil), p.Responsibilities...)
		q.Achievements = append([]string(nil), p.Achievements...)
		out.Positions[i] = q
	}
	out.Technologies = append([]string(nil), e.Technologies...)
	out.Responsibilities = append([]string(nil), e.Responsibilities...)
	out.Achievements = append([]string(nil), e.Achievements...)
	return out
}
