// Package config provides admin password configuration and verification.
package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// AdminConfig holds the credentials guarding cache-management endpoints.
// The hash is produced once (see the `cvexport auth hash` command) and set
// via ADMIN_PASSWORD_HASH.
type AdminConfig struct {
	PasswordHash string
	BcryptCost   int
}

// NewAdminConfig creates the admin configuration from environment variables.
// It reads ADMIN_PASSWORD_HASH (required for protected endpoints).
func NewAdminConfig() (*AdminConfig, error) {
	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}
	return &AdminConfig{PasswordHash: hash, BcryptCost: bcrypt.DefaultCost}, nil
}

// HashPassword hashes a password using bcrypt, for provisioning the admin
// credential.
func HashPassword(pw string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against the stored hash.
func (c *AdminConfig) VerifyPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}
