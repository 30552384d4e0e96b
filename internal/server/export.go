package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Slavigrad/cv-export/internal/cache"
	"github.com/Slavigrad/cv-export/internal/types"
)

// exportResponse wraps a processed bundle for JSON exports.
type exportResponse struct {
	ExportID uuid.UUID              `json:"export_id"`
	Bundle   *types.ProcessedBundle `json:"bundle"`
}

// handleExport processes the CV for the requested template and audience.
// With "Accept: application/pdf" the response is a rendered PDF document;
// otherwise it is the processed bundle as JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	tmpl := types.TemplateByID(opts.TemplateID)
	bundle, err := s.proc.ProcessForTemplate(s.provider.CV(), tmpl, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	exportID := uuid.New()

	if !wantsPDF(r) {
		s.jsonResponse(w, http.StatusOK, exportResponse{ExportID: exportID, Bundle: bundle})
		return
	}

	html, err := s.html.Render(bundle, tmpl, opts.ContentDensity)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to render HTML: %v", err))
		return
	}

	pdf, err := s.pdf.RenderPDF(r.Context(), html, tmpl)
	if err != nil {
		log.Printf("Error rendering PDF for export %s: %v", exportID, err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(bundle, opts)))
	w.Header().Set("X-Export-Id", exportID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}

// handlePreview returns the processed bundle for the requested options,
// serving repeated requests from the cache. The X-Cache header reports HIT
// or MISS.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	tmpl := types.TemplateByID(opts.TemplateID)
	key, err := s.previewKey(tmpl.ID, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	var cached types.ProcessedBundle
	if s.store.GetInto(r.Context(), key, &cached) {
		w.Header().Set("X-Cache", "HIT")
		s.jsonResponse(w, http.StatusOK, &cached)
		return
	}

	bundle, err := s.proc.ProcessForTemplate(s.provider.CV(), tmpl, opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	setOpts := cache.SetOptions{
		Tags: []string{"preview", "audience:" + string(opts.TargetAudience), "template:" + tmpl.ID},
	}
	if err := s.store.Set(r.Context(), key, bundle, cache.TierMemory, setOpts); err != nil {
		log.Printf("warning: failed to cache preview %s: %v", key, err)
	}

	w.Header().Set("X-Cache", "MISS")
	s.jsonResponse(w, http.StatusOK, bundle)
}

// decodeOptions reads processing options from the request body. An empty
// body selects the defaults. Unknown enum values are coerced rather than
// rejected, so validation only fails on out-of-range numbers.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (types.ProcessingOptions, bool) {
	var opts types.ProcessingOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		if !errors.Is(err, io.EOF) {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return opts, false
		}
	}

	opts.Normalize()
	if err := s.validate.Struct(opts); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return opts, false
	}

	return opts, true
}

// previewKey derives a stable cache key from the CV content, the template
// and the normalized options. Any change to one of them changes the key.
func (s *Server) previewKey(templateID string, opts types.ProcessingOptions) (string, error) {
	opts.Normalize()

	payload := struct {
		CVHash     string                  `json:"cv_hash"`
		TemplateID string                  `json:"template_id"`
		Options    types.ProcessingOptions `json:"options"`
	}{
		CVHash:     s.cvFingerprint(),
		TemplateID: templateID,
		Options:    opts,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to derive preview key: %w", err)
	}

	sum := sha256.Sum256(raw)
	return "preview:" + hex.EncodeToString(sum[:]), nil
}

// cvFingerprint hashes the current CV record.
func (s *Server) cvFingerprint() string {
	raw, err := json.Marshal(s.provider.CV())
	if err != nil {
		// The CV was unmarshalled from JSON, so this cannot happen.
		return "unhashable"
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func wantsPDF(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/pdf")
}

// exportFilename builds a download name like "jane-doe-recruiter.pdf".
func exportFilename(bundle *types.ProcessedBundle, opts types.ProcessingOptions) string {
	slug := strings.ToLower(bundle.PersonalInfo.Name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "cv"
	}
	return fmt.Sprintf("%s-%s-%s.pdf", slug, opts.TargetAudience, time.Now().Format("2006-01-02"))
}
