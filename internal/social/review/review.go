// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package review implements user feedback on catalog titles.

A review is one user's scored opinion of a title; each user gets exactly
one review per title. Comments hang off reviews as unscored discussion.
Review scores feed the title rating computed by the catalog on read.
*/
package review

import (
	"time"

	"github.com/google/uuid"
)

// # Domain Entities

// Review is one user's scored opinion of a title.
type Review struct {
	ID        uuid.UUID `json:"id"`
	TitleID   uuid.UUID `json:"title_id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ReviewID  uuid.UUID `json:"review_id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"

	// ScoreMin and ScoreMax bound a review score, matching the
	// database check constraint.
	ScoreMin = 1
	ScoreMax = 10

	// TextMaxLen caps review and comment bodies.
	TextMaxLen = 10000
)
