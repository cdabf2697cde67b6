// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for authentication,
session lifecycle, and account creation.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity:

  - Strategy: Pluggable credential verification producing a tagged [Outcome].
  - Codec: Translates between a User and the minimal token stored per session.
  - Service: Orchestrates registration, login, logout, and session resolution.
  - Repositories: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
*/
package auth

import (
	"time"

	"github.com/inkwell-dev/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Inkwell platform.
//
// # Password Handling
//
// Password carries the plaintext credential only between the HTTP layer and
// the repository's pre-commit hashing hook. The hook consumes it, fills in
// PasswordHash, and clears the field before the INSERT runs, so plaintext
// never reaches durable storage. Both fields are excluded from JSON.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Password     string       `json:"-"` // Transient plaintext; consumed by the creation hook.
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Bio          string       `json:"bio,omitempty"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Principal projects the User into its per-request context representation.
func (user *User) Principal() *sec.Principal {
	return &sec.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldUser            = "user"
	FieldMessage         = "message"
)
