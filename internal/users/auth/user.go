// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package auth implements the passwordless signup and token exchange flow.

It defines the core User entity and the logic for issuing confirmation codes,
delivering them by email, and exchanging them for JWT access tokens.

# Architecture

This layer is the "Truth" of the identity system. Entities defined here have no
external dependencies and encapsulate all business rules related to signup.
*/
package auth

import (
	"time"

	"github.com/revuo-app/revuo/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Revuo platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    string       `json:"first_name,omitempty"`
	LastName     string       `json:"last_name,omitempty"`
	Bio          string       `json:"bio,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsSuperuser  bool         `json:"-"` // Internal flag, never exposed over the API.
	LastLoginAt  time.Time    `json:"-"` // Feeds code derivation, not a public field.
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldToken            = "token"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldPassword         = "password"
)
