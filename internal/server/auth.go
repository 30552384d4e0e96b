package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// loginRequest carries the admin password.
type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

// loginResponse carries a fresh admin session token.
type loginResponse struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleLogin verifies the admin password and issues a session token for the
// protected cache endpoints.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if !s.adminConfig.VerifyPassword(req.Password) {
		err := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, sessionID, err := s.jwtService.GenerateToken()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.jsonResponse(w, http.StatusOK, loginResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(time.Duration(s.jwtService.config.ExpirationHours) * time.Hour),
	})
}
