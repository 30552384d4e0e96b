package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Slavigrad/cv-export/internal/cache"
)

// tierStatus describes one configured cache tier.
type tierStatus struct {
	Name          string        `json:"name"`
	MaxBytes      int64         `json:"max_bytes"`
	MaxEntries    int           `json:"max_entries"`
	DefaultTTL    time.Duration `json:"default_ttl_ns"`
	SweepInterval time.Duration `json:"sweep_interval_ns"`
}

// handleCacheAnalytics returns hit/miss counters and the tier configuration.
func (s *Server) handleCacheAnalytics(w http.ResponseWriter, _ *http.Request) {
	tiers := make([]tierStatus, 0, len(s.tierNames))
	for _, name := range s.tierNames {
		cfg := s.store.Tier(name).Config()
		tiers = append(tiers, tierStatus{
			Name:          string(name),
			MaxBytes:      cfg.MaxBytes,
			MaxEntries:    cfg.MaxEntries,
			DefaultTTL:    cfg.DefaultTTL,
			SweepInterval: cfg.SweepInterval,
		})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analytics": s.store.Analytics().Snapshot(),
		"tiers":     tiers,
	})
}

// clearRequest selects what to remove. An empty tier clears every tier; an
// empty filter clears everything in the selected tiers.
type clearRequest struct {
	Tier             string   `json:"tier,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	OlderThanSeconds int      `json:"older_than_seconds,omitempty" validate:"omitempty,min=1"`
}

// handleCacheClear removes cached entries matching the request filter. The
// route requires an admin session token.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	targets := s.tierNames
	if req.Tier != "" {
		name := cache.TierName(req.Tier)
		if s.store.Tier(name) == nil {
			err := &ErrUnknownTier{Tier: req.Tier}
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		targets = []cache.TierName{name}
	}

	filter := cache.Filter{
		Tags:      req.Tags,
		OlderThan: time.Duration(req.OlderThanSeconds) * time.Second,
	}

	removed := make(map[string]int, len(targets))
	total := 0
	for _, name := range targets {
		n, err := s.store.Clear(r.Context(), name, filter)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		removed[string(name)] = n
		total += n
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"removed":  removed,
		"total":    total,
		"filtered": req.Tags != nil || req.OlderThanSeconds > 0,
	})
}
