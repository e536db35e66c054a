// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package title implements the catalog of reviewable works.

A title is the central entity of the platform: everything users review
belongs to exactly one title. Titles carry an optional category, a set
of genres, and a rating derived on read from the scores of published
reviews. The rating is never stored.
*/
package title

import (
	"time"

	"github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/core/reference"
)

// # Entities

// Title represents one reviewable work in the catalog.
type Title struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Description string            `json:"description,omitempty"`
	Rating      *float64          `json:"rating"`
	Category    *reference.Category `json:"category"`
	Genres      []reference.Genre `json:"genres"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldYear         = "year"
	FieldDescription  = "description"
	FieldCategorySlug = "category"
	FieldGenreSlugs   = "genres"

	// NameMaxLen mirrors the database column limit.
	NameMaxLen = 256
)
