package processor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Slavigrad/cv-export/internal/layout"
	"github.com/Slavigrad/cv-export/internal/strategy"
	"github.com/Slavigrad/cv-export/internal/types"
)

// Processor runs the content processing pipeline. Construct one with New and
// share it freely; it holds no per-call state.
type Processor struct {
	metrics MetricExtractor
	now     func() time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithMetricExtractor swaps the metric extraction strategy.
func WithMetricExtractor(m MetricExtractor) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// New constructs a Processor with the default regex metric extractor.
func New(opts ...Option) *Processor {
	p := &Processor{
		metrics: RegexMetricExtractor{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessForTemplate runs the full pipeline: sanitize, apply the audience
// strategy, score and annotate each section, analyze content fit and
// assemble metadata. It is a pure function of its inputs (given a fixed
// clock) and never mutates cv. Any internal failure surfaces as a single
// wrapped error; no partial bundle is returned.
func (p *Processor) ProcessForTemplate(cv *types.CVData, tmpl types.Template, opts types.ProcessingOptions) (bundle *types.ProcessedBundle, err error) {
	opts.Normalize()

	defer func() {
		if r := recover(); r != nil {
			bundle = nil
			err = fmt.Errorf("processing failed for template %s, audience %s: %v", tmpl.ID, opts.TargetAudience, r)
		}
	}()

	started := p.now()
	originalSize := serializedSize(cv)

	working := cv.Clone()
	optimizations := sanitize(working)

	strat := strategy.ForAudience(opts.TargetAudience)
	working = strategy.Apply(working, strat)
	optimizations = append(optimizations, fmt.Sprintf("applied %s content strategy", strat.Audience))

	b := &types.ProcessedBundle{
		PersonalInfo:    processPersonalInfo(working.PersonalInfo, opts),
		Education:       working.Education,
		Certifications:  working.Certifications,
		Publications:    working.Publications,
		Speaking:        working.Speaking,
		Languages:       working.Languages,
		SectionPriority: strat.SectionWeights,
	}

	if types.Include(opts.IncludeSections.Experiences) {
		b.Experiences = p.processExperiences(working.Experiences, opts)
	}
	if types.Include(opts.IncludeSections.Projects) {
		b.Projects = p.processProjects(working.Projects, opts)
	}
	if types.Include(opts.IncludeSections.Skills) {
		b.Skills = p.processSkills(working.Skills, opts)
	}
	if !types.Include(opts.IncludeSections.Education) {
		b.Education = nil
	}
	if !types.Include(opts.IncludeSections.Certifications) {
		b.Certifications = nil
	}
	if !types.Include(opts.IncludeSections.Publications) {
		b.Publications = nil
	}
	if !types.Include(opts.IncludeSections.Speaking) {
		b.Speaking = nil
	}

	b.Fit = layout.AnalyzeFit(b, tmpl)
	if len(b.Fit.Recommendations) > 0 {
		optimizations = append(optimizations, "layout recommendations emitted")
	}

	processedSize := serializedSize(b)
	ratio := 0.0
	if originalSize > 0 {
		ratio = float64(processedSize) / float64(originalSize)
	}
	b.Metadata = types.ProcessingMetadata{
		OriginalSize:     originalSize,
		ProcessedSize:    processedSize,
		CompressionRatio: ratio,
		Elapsed:          p.now().Sub(started),
		Optimizations:    optimizations,
		TemplateID:       tmpl.ID,
		TargetAudience:   opts.TargetAudience,
	}
	return b, nil
}

// serializedSize estimates the JSON-encoded size of v. Encoding failures
// panic and are converted to a processing error by the pipeline recover.
func serializedSize(v any) int {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("serialize: %v", err))
	}
	return len(data)
}
