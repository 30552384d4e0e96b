package types

import "time"

// ProcessedPersonalInfo is the display-ready header section.
type ProcessedPersonalInfo struct {
	PersonalInfo
	KeyTechnologies  []string `json:"key_technologies"`
	OptimizedSummary string   `json:"optimized_summary"`
}

// ProcessedExperience is an experience annotated for layout.
type ProcessedExperience struct {
	Experience
	OverallDateRange    DateRange `json:"overall_date_range"`
	Priority            int       `json:"priority"`       // 1-based rank, highest relevance first
	PriorityScore       float64   `json:"priority_score"` // absolute score from the scoring function
	Elevation           int       `json:"elevation"`      // 1-4 bucketed from PriorityScore
	KeyAchievements     []string  `json:"key_achievements"`
	PrimaryTechnologies []string  `json:"primary_technologies"`
	ImpactMetrics       []string  `json:"impact_metrics,omitempty"`
	EstimatedHeight     float64   `json:"estimated_height"`
}

// ProcessedProject is a project annotated for layout.
type ProcessedProject struct {
	Project
	OptimizedDescription string  `json:"optimized_description"`
	Priority             int     `json:"priority"`
	PriorityScore        float64 `json:"priority_score"`
	Elevation            int     `json:"elevation"`
	EstimatedHeight      float64 `json:"estimated_height"`
}

// SkillLine is a single skill in the detailed rendering.
type SkillLine struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
	Years float64    `json:"years,omitempty"`
}

// SkillCategory groups skills under a category heading.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// CompactSkills is the flat name-list rendering.
type CompactSkills struct {
	SkillList       []string `json:"skill_list"`
	EstimatedLines  int      `json:"estimated_lines"`
	EstimatedHeight float64  `json:"estimated_height"`
}

// DetailedSkills is the name+level+years rendering.
type DetailedSkills struct {
	Skills          []SkillLine `json:"skills"`
	EstimatedHeight float64     `json:"estimated_height"`
}

// CategorizedSkills is the grouped-by-category rendering.
type CategorizedSkills struct {
	Categories      []SkillCategory `json:"categories"`
	EstimatedHeight float64         `json:"estimated_height"`
}

// ProcessedSkills carries all three alternate renderings plus the
// recommended display mode for the current options.
type ProcessedSkills struct {
	Compact         CompactSkills     `json:"compact"`
	Detailed        DetailedSkills    `json:"detailed"`
	Categorized     CategorizedSkills `json:"categorized"`
	RecommendedMode SkillsDisplayMode `json:"recommended_mode"`
}

// FitAnalysis is the result of comparing estimated content height against
// the space a template offers.
type FitAnalysis struct {
	TotalEstimatedHeight float64  `json:"total_estimated_height"`
	AvailableHeight      float64  `json:"available_height"`
	FitRatio             float64  `json:"fit_ratio"`
	OverflowSections     []string `json:"overflow_sections,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`
}

// ProcessingMetadata describes a processing run.
type ProcessingMetadata struct {
	OriginalSize     int            `json:"original_size"`
	ProcessedSize    int            `json:"processed_size"`
	CompressionRatio float64        `json:"compression_ratio"`
	Elapsed          time.Duration  `json:"elapsed_ns"`
	Optimizations    []string       `json:"optimizations"`
	TemplateID       string         `json:"template_id"`
	TargetAudience   TargetAudience `json:"target_audience"`
}

// ProcessedBundle is the fully processed, layout-annotated output of a
// processing run. It is created fresh on every call and never mutated after
// being returned.
type ProcessedBundle struct {
	PersonalInfo    ProcessedPersonalInfo `json:"personal_info"`
	Experiences     []ProcessedExperience `json:"experiences"`
	Projects        []ProcessedProject    `json:"projects"`
	Skills          ProcessedSkills       `json:"skills"`
	Education       []Education           `json:"education,omitempty"`
	Certifications  []Certification       `json:"certifications,omitempty"`
	Publications    []Publication         `json:"publications,omitempty"`
	Speaking        []Speaking            `json:"speaking,omitempty"`
	Languages       []Language            `json:"languages,omitempty"`
	SectionPriority map[string]float64    `json:"section_priority"`
	Fit             FitAnalysis           `json:"fit"`
	Metadata        ProcessingMetadata    `json:"metadata"`
}
