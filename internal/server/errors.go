package server

import (
	"fmt"
	"net/http"
)

// ErrInvalidCredentials indicates a failed admin login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnknownTier indicates a cache operation named a tier that is not
// configured on this server.
type ErrUnknownTier struct {
	Tier string
}

func (e *ErrUnknownTier) Error() string {
	return fmt.Sprintf("unknown cache tier: %s", e.Tier)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrValidation, *ErrUnknownTier:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
