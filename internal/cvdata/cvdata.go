// Package cvdata provides the read-only CV data source: an embedded default
// CV, JSON loading with schema validation and derived aggregate stats.
package cvdata

import (
	"time"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Provider is the pull-based read model the processing pipeline consumes.
// Implementations return defensive copies; callers may mutate results freely.
type Provider interface {
	CV() *types.CVData
	PersonalInfo() types.PersonalInfo
	Experiences() []types.Experience
	Projects() []types.Project
	Skills() []types.Skill
	Stats() Stats
}

// Stats are the derived aggregate numbers shown alongside the CV.
type Stats struct {
	TotalYears        float64 `json:"total_years"`
	TotalCompanies    int     `json:"total_companies"`
	TotalProjects     int     `json:"total_projects"`
	TotalTechnologies int     `json:"total_technologies"`
}

// StaticProvider serves a fixed in-memory CV record.
type StaticProvider struct {
	cv  *types.CVData
	now func() time.Time
}

// NewStaticProvider wraps a CV record. A nil clock means time.Now; the clock
// only affects the open-ended ranges in Stats.
func NewStaticProvider(cv *types.CVData, now func() time.Time) *StaticProvider {
	if now == nil {
		now = time.Now
	}
	return &StaticProvider{cv: cv, now: now}
}

// CV returns a deep copy of the full record.
func (p *StaticProvider) CV() *types.CVData { return p.cv.Clone() }

// PersonalInfo returns the header fields.
func (p *StaticProvider) PersonalInfo() types.PersonalInfo {
	return p.cv.Clone().PersonalInfo
}

// Experiences returns a copy of the experience list.
func (p *StaticProvider) Experiences() []types.Experience {
	return p.cv.Clone().Experiences
}

// Projects returns a copy of the project list.
func (p *StaticProvider) Projects() []types.Project {
	return p.cv.Clone().Projects
}

// Skills returns a copy of the skill list.
func (p *StaticProvider) Skills() []types.Skill {
	return p.cv.Clone().Skills
}

// Stats derives the aggregate numbers from the record. Total years spans
// from the earliest position start to the latest end (or now for open-ended
// positions); employment gaps are not subtracted.
func (p *StaticProvider) Stats() Stats {
	s := Stats{
		TotalCompanies: len(p.cv.Experiences),
		TotalProjects:  len(p.cv.Projects),
	}

	techs := make(map[string]bool)
	for _, t := range p.cv.PersonalInfo.Technologies {
		techs[t] = true
	}

	var earliest, latest time.Time
	now := p.now()
	for _, e := range p.cv.Experiences {
		for _, tech := range e.AllTechnologies() {
			techs[tech] = true
		}
		r := e.OverallRange()
		if start, ok := types.ParseDate(r.Start); ok && (earliest.IsZero() || start.Before(earliest)) {
			earliest = start
		}
		end := now
		if !r.Current {
			if e2, ok := types.ParseDate(r.End); ok {
				end = e2
			}
		}
		if end.After(latest) {
			latest = end
		}
	}
	for _, proj := range p.cv.Projects {
		for _, tech := range proj.Technologies {
			techs[tech] = true
		}
	}
	s.TotalTechnologies = len(techs)

	if !earliest.IsZero() && latest.After(earliest) {
		s.TotalYears = latest.Sub(earliest).Hours() / 24 / 365.25
	}
	return s
}
