package processor

import (
	"strings"

	"github.com/Slavigrad/cv-export/internal/types"
)

// Character budgets per density for summaries and project descriptions.
var summaryBudgets = map[types.ContentDensity]int{
	types.DensityCompact:  150,
	types.DensityNormal:   200,
	types.DensitySpacious: 250,
}

var descriptionBudgets = map[types.ContentDensity]int{
	types.DensityCompact:  120,
	types.DensityNormal:   160,
	types.DensitySpacious: 200,
}

// SummaryBudget returns the summary character budget for a density.
func SummaryBudget(d types.ContentDensity) int {
	if b, ok := summaryBudgets[d]; ok {
		return b
	}
	return summaryBudgets[types.DensityNormal]
}

// DescriptionBudget returns the project description budget for a density.
func DescriptionBudget(d types.ContentDensity) int {
	if b, ok := descriptionBudgets[d]; ok {
		return b
	}
	return descriptionBudgets[types.DensityNormal]
}

// truncateAtSentence cuts text to at most maxLen characters, preferring to
// end on a sentence boundary. When no complete sentence fits it
// hard-truncates and appends an ellipsis. A non-empty input never produces an
// empty result.
func truncateAtSentence(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	// Find the last sentence end within budget.
	cut := -1
	for i := 0; i < maxLen; i++ {
		switch text[i] {
		case '.', '!', '?':
			cut = i
		}
	}
	if cut > 0 {
		return strings.TrimSpace(text[:cut+1])
	}

	// No sentence fits; hard truncate on a word boundary where possible.
	if maxLen <= 3 {
		return text[:maxLen]
	}
	hard := text[:maxLen-3]
	if idx := strings.LastIndexByte(hard, ' '); idx > maxLen/2 {
		hard = hard[:idx]
	}
	return strings.TrimSpace(hard) + "..."
}
