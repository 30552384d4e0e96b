// Package processor implements the PDF content processing pipeline: it
// sanitizes CV data, applies a content strategy, scores and ranks sections by
// audience-specific priority, truncates text to density budgets and estimates
// rendered heights.
package processor

import "github.com/Slavigrad/cv-export/internal/types"

// Audience keyword tables are tunable configuration, kept apart from the
// scoring logic that consumes them.

// technologyPriorities order key technologies per audience; earlier entries
// surface first.
var technologyPriorities = map[types.TargetAudience][]string{
	types.AudienceRecruiter: {
		"React", "TypeScript", "Node.js", "Python", "AWS", "Docker", "PostgreSQL",
	},
	types.AudienceTechnical: {
		"Go", "Kubernetes", "TypeScript", "PostgreSQL", "Redis", "gRPC", "Terraform",
		"Kafka", "Docker", "React",
	},
	types.AudienceExecutive: {
		"AWS", "Cloud Architecture", "Microservices", "Platform", "Kubernetes",
	},
}

// achievementKeywords rank achievements per audience; a higher match count
// wins.
var achievementKeywords = map[types.TargetAudience][]string{
	types.AudienceRecruiter: {
		"led", "delivered", "launched", "improved", "grew", "award", "mentored", "hired",
	},
	types.AudienceTechnical: {
		"architected", "designed", "optimized", "scaled", "migrated", "automated",
		"reduced latency", "throughput", "refactored",
	},
	types.AudienceExecutive: {
		"revenue", "cost", "strategy", "growth", "roi", "stakeholder", "budget", "team",
	},
}

// companySizeScores map company size labels to score contributions.
var companySizeScores = map[string]float64{
	"enterprise": 15,
	"large":      12,
	"medium":     9,
	"small":      6,
	"startup":    3,
}
