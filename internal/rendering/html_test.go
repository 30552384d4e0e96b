package rendering

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Slavigrad/cv-export/internal/cvdata"
	"github.com/Slavigrad/cv-export/internal/processor"
	"github.com/Slavigrad/cv-export/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDefaultCV(t *testing.T, opts types.ProcessingOptions) *goquery.Document {
	t.Helper()
	opts.Normalize()

	fixed := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	p := processor.New(processor.WithClock(func() time.Time { return fixed }))
	tmpl := types.TemplateByID(opts.TemplateID)
	bundle, err := p.ProcessForTemplate(cvdata.Default(), tmpl, opts)
	require.NoError(t, err)

	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	html, err := r.Render(bundle, tmpl, opts.ContentDensity)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRender_ContainsCoreSections(t *testing.T) {
	doc := renderDefaultCV(t, types.ProcessingOptions{TargetAudience: types.AudienceTechnical})

	assert.Equal(t, 1, doc.Find("section#experiences").Length())
	assert.Equal(t, 1, doc.Find("section#projects").Length())
	assert.Equal(t, 1, doc.Find("section#skills").Length())
	assert.Contains(t, doc.Find("h1").Text(), "Lubomír Hradec")
}

func TestRender_RecruiterAudienceHidesPublications(t *testing.T) {
	doc := renderDefaultCV(t, types.ProcessingOptions{TargetAudience: types.AudienceRecruiter})

	assert.Equal(t, 0, doc.Find("section#publications").Length())
	assert.Equal(t, 0, doc.Find("section#speaking").Length())
}

func TestRender_TechnicalAudienceShowsPublications(t *testing.T) {
	doc := renderDefaultCV(t, types.ProcessingOptions{TargetAudience: types.AudienceTechnical})

	assert.Equal(t, 1, doc.Find("section#publications").Length())
}

func TestRender_SectionTogglesRespected(t *testing.T) {
	off := false
	doc := renderDefaultCV(t, types.ProcessingOptions{
		TargetAudience:  types.AudienceTechnical,
		IncludeSections: types.SectionToggles{Projects: &off},
	})

	assert.Equal(t, 0, doc.Find("section#projects").Length())
	assert.Equal(t, 1, doc.Find("section#experiences").Length())
}

func TestRender_ElevationClassesPresent(t *testing.T) {
	doc := renderDefaultCV(t, types.ProcessingOptions{TargetAudience: types.AudienceTechnical})

	found := 0
	doc.Find("section#experiences .entry").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		if strings.Contains(class, "elevation-") {
			found++
		}
	})
	assert.Greater(t, found, 0)
}

func TestRender_DensityClassOnBody(t *testing.T) {
	doc := renderDefaultCV(t, types.ProcessingOptions{ContentDensity: types.DensityCompact})

	class, _ := doc.Find("body").Attr("class")
	assert.Equal(t, "density-compact", class)
}
