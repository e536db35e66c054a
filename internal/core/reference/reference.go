// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package reference manages the classification vocabulary of the catalogue.

Categories (one per title) and genres (many per title) are the lookup
entities every work is filed under. Both are identified externally by a
URL-safe slug.

# Architecture

  - Entities: Category, Genre.
  - Policy: Reads are public; writes require an admin [sec.Actor].
  - Slugs: Auto-generated from the name when not supplied explicitly.
*/
package reference

import (
	"time"

	"github.com/google/uuid"
)

// # Domain Entities

// Category is the single high-level bucket a title belongs to
// (e.g. "Films", "Books", "Music").
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Genre is a thematic label; a title can carry any number of them.
type Genre struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"

	// NameMaxLen mirrors the database column limit.
	NameMaxLen = 256

	// SlugMaxLen mirrors the database column limit.
	SlugMaxLen = 50
)
