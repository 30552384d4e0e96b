package processor

import "github.com/Slavigrad/cv-export/internal/types"

// maxKeyTechnologies bounds the header technology list.
const maxKeyTechnologies = 7

// processPersonalInfo selects key technologies by audience priority and
// truncates the summary to the density budget.
func processPersonalInfo(pi types.PersonalInfo, opts types.ProcessingOptions) types.ProcessedPersonalInfo {
	priorities := technologyPriorities[opts.TargetAudience]
	return types.ProcessedPersonalInfo{
		PersonalInfo:     pi,
		KeyTechnologies:  matchTechnologies(pi.Technologies, priorities, maxKeyTechnologies),
		OptimizedSummary: truncateAtSentence(pi.Summary, SummaryBudget(opts.ContentDensity)),
	}
}
