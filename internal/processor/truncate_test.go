package processor

import (
	"strings"
	"testing"

	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestTruncateAtSentence_ShortTextUnchanged(t *testing.T) {
	got := truncateAtSentence("Short summary.", 150)
	assert.Equal(t, "Short summary.", got)
}

func TestTruncateAtSentence_CutsAtSentenceBoundary(t *testing.T) {
	text := "First sentence here. Second sentence is quite a bit longer than the first one. Third never fits at all."

	got := truncateAtSentence(text, 60)

	assert.Equal(t, "First sentence here.", got)
}

func TestTruncateAtSentence_HardTruncateWhenNoSentenceFits(t *testing.T) {
	text := strings.Repeat("word ", 50) + "end"

	got := truncateAtSentence(text, 40)

	assert.LessOrEqual(t, len(got), 40)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateAtSentence_NeverEmptyForNonEmptyInput(t *testing.T) {
	for _, budget := range []int{1, 2, 3, 10, 150} {
		got := truncateAtSentence("nonempty input without any period at all", budget)
		assert.NotEmpty(t, got, "budget %d", budget)
		assert.LessOrEqual(t, len(got), budget)
	}
}

func TestSummaryBudgets_PerDensity(t *testing.T) {
	assert.Equal(t, 150, SummaryBudget(types.DensityCompact))
	assert.Equal(t, 200, SummaryBudget(types.DensityNormal))
	assert.Equal(t, 250, SummaryBudget(types.DensitySpacious))
	assert.Equal(t, 200, SummaryBudget(types.ContentDensity("bogus")))

	assert.Equal(t, 120, DescriptionBudget(types.DensityCompact))
	assert.Equal(t, 200, DescriptionBudget(types.DensitySpacious))
}

func TestRegexMetricExtractor(t *testing.T) {
	e := RegexMetricExtractor{}

	metrics := e.ExtractMetrics("Cut costs by 35%, a 3x speedup, saved $1.2M, served 10K users")

	assert.Contains(t, metrics, "35%")
	assert.Contains(t, metrics, "3x")
	assert.Contains(t, metrics, "10K users")
}

func TestRegexMetricExtractor_NoMetrics(t *testing.T) {
	e := RegexMetricExtractor{}
	assert.Empty(t, e.ExtractMetrics("Worked on various internal initiatives"))
}
