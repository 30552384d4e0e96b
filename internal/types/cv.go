// Package types provides type definitions for structured data used throughout the CV export engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CVData is the read-only source of truth for a CV. Processing never mutates
// a CVData owned by the caller; pipelines work on copies obtained via Clone.
type CVData struct {
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	Education      []Education     `json:"education,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
	Publications   []Publication   `json:"publications,omitempty"`
	Speaking       []Speaking      `json:"speaking,omitempty"`
	Languages      []Language      `json:"languages,omitempty"`
	Interests      []string        `json:"interests,omitempty"`
}

// PersonalInfo holds the header-level identity and summary fields.
type PersonalInfo struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	Location     string   `json:"location,omitempty"`
	Website      string   `json:"website,omitempty"`
	LinkedIn     string   `json:"linkedin,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	Summary      string   `json:"summary"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education represents a single degree or course of study.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Certification represents a professional certification.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Publication represents a published article or paper.
type Publication struct {
	Title string `json:"title"`
	Venue string `json:"venue,omitempty"`
	Date  string `json:"date,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Speaking represents a conference talk or public speaking engagement.
type Speaking struct {
	Title string `json:"title"`
	Event string `json:"event,omitempty"`
	Date  string `json:"date,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Language represents a spoken language and proficiency.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Clone returns a deep copy of the CVData. Slices are copied element by
// element so the processing pipeline can annotate freely without touching
// caller-owned data.
func (cv *CVData) Clone() *CVData {
	out := &CVData{
		PersonalInfo: cv.PersonalInfo,
	}
	out.PersonalInfo.Technologies = append([]string(nil), cv.PersonalInfo.Technologies...)

	out.Experiences = make([]Experience, len(cv.Experiences))
	for i, e := range cv.Experiences {
		out.Experiences[i] = e.clone()
	}
	out.Projects = make([]Project, len(cv.Projects))
	for i, p := range cv.Projects {
		out.Projects[i] = p.clone()
	}
	out.Skills = append([]Skill(nil), cv.Skills...)
	out.Education = append([]Education(nil), cv.Education...)
	out.Certifications = append([]Certification(nil), cv.Certifications...)
	out.Publications = append([]Publication(nil), cv.Publications...)
	out.Speaking = append([]Speaking(nil), cv.Speaking...)
	out.Languages = append([]Language(nil), cv.Languages...)
	out.Interests = append([]string(nil), cv.Interests...)
	return out
}
