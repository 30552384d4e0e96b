package types

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

// Known project statuses.
const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectPlanned    ProjectStatus = "planned"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Project represents a portfolio project.
type Project struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Technologies   []string      `json:"technologies,omitempty"`
	Status         ProjectStatus `json:"status,omitempty"`
	Metrics        []string      `json:"metrics,omitempty"`
	Links          []Link        `json:"links,omitempty"`
	Featured       bool          `json:"featured,omitempty"`
	HighlightOrder int           `json:"highlight_order,omitempty"`
}

// Link is a labeled URL attached to a project.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (p Project) clone() Project {
	out := p
	out.Technologies = append([]string(nil), p.Technologies...)
	out.Metrics = append([]string(nil), p.Metrics...)
	out.Links = append([]Link(nil), p.Links...)
	return out
}
