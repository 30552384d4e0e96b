package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Slavigrad/cv-export/internal/types"
)

// handleHealth returns server health status and the active cache tiers.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	tiers := []string{"memory"}
	if s.redisClient != nil {
		tiers = append(tiers, "session")
	}
	if s.durableTier != nil {
		tiers = append(tiers, "durable")
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"cache_tiers": tiers,
	})
}

// handleGetCV returns the full CV record.
func (s *Server) handleGetCV(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.provider.CV())
}

// handleCVStats returns aggregate figures about the CV.
func (s *Server) handleCVStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.provider.Stats())
}

// handleListTemplates returns the built-in page templates.
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	ids := types.TemplateIDs()
	sort.Strings(ids)

	templates := make([]types.Template, 0, len(ids))
	for _, id := range ids {
		templates = append(templates, types.TemplateByID(id))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"default":   types.DefaultTemplateID,
		"templates": templates,
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractValidationErrors flattens validator errors into a readable message.
func extractValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fe.Field()+" failed on "+fe.Tag())
	}
	return strings.Join(msgs, "; ")
}
