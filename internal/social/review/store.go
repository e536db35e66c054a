// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/revuo-app/revuo/pkg/pagination"
)

// ReviewRepository defines the persistence operations for reviews.
type ReviewRepository interface {
	/*
		ListByTitle returns a page of reviews for one title, newest first,
		with author usernames hydrated, plus the total count.

		Parameters:
		  - context: context.Context
		  - titleID: uuid.UUID
		  - params: pagination.Params

		Returns:
		  - []Review: Page of reviews
		  - int: Total reviews on the title
		  - error: Database execution errors
	*/
	ListByTitle(context context.Context, titleID uuid.UUID, params pagination.Params) ([]Review, int, error)

	/*
		FindByID resolves a review scoped to its title.

		Parameters:
		  - context: context.Context
		  - titleID: uuid.UUID
		  - reviewID: uuid.UUID

		Returns:
		  - *Review: Found review
		  - error: Not found or execution errors
	*/
	FindByID(context context.Context, titleID, reviewID uuid.UUID) (*Review, error)

	/*
		Create persists a new review. A second review by the same author on
		the same title violates the uniqueness constraint.

		Parameters:
		  - context: context.Context
		  - review: *Review (ID assigned by caller)

		Returns:
		  - error: Duplicate review, constraint violations, or execution errors
	*/
	Create(context context.Context, review *Review) error

	/*
		Update writes the review text and score.

		Parameters:
		  - context: context.Context
		  - review: *Review

		Returns:
		  - error: Not found or execution errors
	*/
	Update(context context.Context, review *Review) error

	/*
		Delete removes a review. Its comments cascade in the database.

		Parameters:
		  - context: context.Context
		  - reviewID: uuid.UUID

		Returns:
		  - error: Not found or execution errors
	*/
	Delete(context context.Context, reviewID uuid.UUID) error
}

// CommentRepository defines the persistence operations for review comments.
type CommentRepository interface {
	/*
		ListByReview returns a page of comments for one review, oldest first,
		with author usernames hydrated, plus the total count.

		Parameters:
		  - context: context.Context
		  - reviewID: uuid.UUID
		  - params: pagination.Params

		Returns:
		  - []Comment: Page of comments
		  - int: Total comments on the review
		  - error: Database execution errors
	*/
	ListByReview(context context.Context, reviewID uuid.UUID, params pagination.Params) ([]Comment, int, error)

	/*
		FindByID resolves a comment scoped to its review.

		Parameters:
		  - context: context.Context
		  - reviewID: uuid.UUID
		  - commentID: uuid.UUID

		Returns:
		  - *Comment: Found comment
		  - error: Not found or execution errors
	*/
	FindByID(context context.Context, reviewID, commentID uuid.UUID) (*Comment, error)

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (ID assigned by caller)

		Returns:
		  - error: Constraint violations or execution errors
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update writes the comment text.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Not found or execution errors
	*/
	Update(context context.Context, comment *Comment) error

	/*
		Delete removes a comment.

		Parameters:
		  - context: context.Context
		  - commentID: uuid.UUID

		Returns:
		  - error: Not found or execution errors
	*/
	Delete(context context.Context, commentID uuid.UUID) error
}
