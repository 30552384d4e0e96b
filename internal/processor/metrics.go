package processor

import "regexp"

// MetricExtractor pulls numeric impact phrases out of free-form achievement
// text. The default is regex-based; implementations can be swapped without
// touching the scoring logic that consumes them.
type MetricExtractor interface {
	ExtractMetrics(text string) []string
}

// maxMetricsPerEntity bounds how many metrics a single experience or project
// carries into the bundle.
const maxMetricsPerEntity = 3

// RegexMetricExtractor matches percentages, multipliers, currency amounts and
// scale counts.
type RegexMetricExtractor struct{}

var metricPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+(?:\.\d+)?%`),                                                   // 40%, 99.95%
	regexp.MustCompile(`\d+(?:\.\d+)?x\b`),                                                 // 3x, 2.5x
	regexp.MustCompile(`[$€£]\s?\d[\d,.]*\s?[KMBkmb]?`),                                    // $1.2M, €500K
	regexp.MustCompile(`(?i)\d[\d,.]*\+?\s?[KMB]?\s?(?:users|requests|customers|downloads|deployments|qps|rps)`), // 10K users
}

// ExtractMetrics returns every distinct metric phrase found, in match order.
func (RegexMetricExtractor) ExtractMetrics(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pat := range metricPatterns {
		for _, m := range pat.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}
