// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and access management layer.

It defines the core User entity and the logic for registration, login,
token verification, and password recovery.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no transport dependencies and encapsulate all business rules related
to accounts and credentials.
*/
package auth

import (
	"time"

	"github.com/taibuivan/cliplet/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Cliplet platform.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"isActive"`
	LastLoginAt  *time.Time   `json:"lastLogin,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity converts the persisted account into the request-scoped caller
// identity carried through middleware and handlers.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldUser            = "user"
	FieldAccessToken     = "token"
	FieldExpiresIn       = "expiresIn"
)
