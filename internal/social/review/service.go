// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package review

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/core/title"
	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// TitleResolver confirms that a reviewed title exists.
type TitleResolver interface {
	FindByID(context context.Context, titleID uuid.UUID) (*title.Title, error)
}

// Service implements the review and comment business logic. Reads are
// public; writes belong to any authenticated user, but modifying someone
// else's content takes a moderator.
type Service struct {
	reviewRepository  ReviewRepository
	commentRepository CommentRepository
	titleResolver     TitleResolver
	logger            *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(
	reviewRepo ReviewRepository,
	commentRepo CommentRepository,
	titleResolver TitleResolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		reviewRepository:  reviewRepo,
		commentRepository: commentRepo,
		titleResolver:     titleResolver,
		logger:            logger,
	}
}

// ReviewInput carries the fields for a new review.
type ReviewInput struct {
	Text  string
	Score int
}

// ReviewUpdateInput carries a partial review update.
type ReviewUpdateInput struct {
	Text  *string
	Score *int
}

// CommentInput carries the body for a new or updated comment.
type CommentInput struct {
	Text string
}

// # Review Methods

/*
ListReviews returns a page of reviews for one title, newest first.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID
  - params: pagination.Params

Returns:
  - []Review: Page of reviews
  - int: Total reviews on the title
  - error: Unknown title or retrieval failures
*/
func (service *Service) ListReviews(context context.Context, titleID uuid.UUID, params pagination.Params) ([]Review, int, error) {
	if _, err := service.titleResolver.FindByID(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviewRepository.ListByTitle(context, titleID, params)
}

/*
GetReview returns one review scoped to its title.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID
  - reviewID: uuid.UUID

Returns:
  - *Review: Found review
  - error: Not found or retrieval failures
*/
func (service *Service) GetReview(context context.Context, titleID, reviewID uuid.UUID) (*Review, error) {
	return service.reviewRepository.FindByID(context, titleID, reviewID)
}

/*
CreateReview publishes the actor's review of a title. Each user gets one
review per title; a second attempt fails validation.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - input: ReviewInput

Returns:
  - *Review: Created review
  - error: Unknown title, validation, or storage failures
*/
func (service *Service) CreateReview(context context.Context, actor sec.Actor, titleID uuid.UUID, input ReviewInput) (*Review, error) {
	if err := validateScore(input.Score); err != nil {
		return nil, err
	}

	if _, err := service.titleResolver.FindByID(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.reviewRepository.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID.String()),
		slog.String("title_id", titleID.String()),
		slog.String("author_id", actor.ID),
	)

	return review, nil
}

/*
UpdateReview applies a partial update to a review. The author may edit
their own review; moderators and administrators may edit anyone's.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - input: ReviewUpdateInput

Returns:
  - *Review: Updated review
  - error: Forbidden, not found, validation, or storage failures
*/
func (service *Service) UpdateReview(context context.Context, actor sec.Actor, titleID, reviewID uuid.UUID, input ReviewUpdateInput) (*Review, error) {
	review, err := service.reviewRepository.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModifyContent(review.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify this review")
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		if err := validateScore(*input.Score); err != nil {
			return nil, err
		}
		review.Score = *input.Score
	}

	if err := service.reviewRepository.Update(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
DeleteReview removes a review and its comments. The author may delete
their own review; moderators and administrators may delete anyone's.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - reviewID: uuid.UUID

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) DeleteReview(context context.Context, actor sec.Actor, titleID, reviewID uuid.UUID) error {
	review, err := service.reviewRepository.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !actor.CanModifyContent(review.AuthorID) {
		return apperr.Forbidden("You cannot modify this review")
	}

	if err := service.reviewRepository.Delete(context, review.ID); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.String("review_id", review.ID.String()),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Comment Methods

/*
ListComments returns a page of comments under one review, oldest first.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - params: pagination.Params

Returns:
  - []Comment: Page of comments
  - int: Total comments on the review
  - error: Unknown review or retrieval failures
*/
func (service *Service) ListComments(context context.Context, titleID, reviewID uuid.UUID, params pagination.Params) ([]Comment, int, error) {
	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.commentRepository.ListByReview(context, reviewID, params)
}

/*
GetComment returns one comment scoped to its review.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - commentID: uuid.UUID

Returns:
  - *Comment: Found comment
  - error: Not found or retrieval failures
*/
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID uuid.UUID) (*Comment, error) {
	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.commentRepository.FindByID(context, reviewID, commentID)
}

/*
CreateComment attaches the actor's comment to a review.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - input: CommentInput

Returns:
  - *Comment: Created comment
  - error: Unknown review, validation, or storage failures
*/
func (service *Service) CreateComment(context context.Context, actor sec.Actor, titleID, reviewID uuid.UUID, input CommentInput) (*Comment, error) {
	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Author:   actor.Username,
		Text:     input.Text,
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("review_id", reviewID.String()),
		slog.String("author_id", actor.ID),
	)

	return comment, nil
}

/*
UpdateComment rewrites a comment body. The author may edit their own
comment; moderators and administrators may edit anyone's.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - commentID: uuid.UUID
  - input: CommentInput

Returns:
  - *Comment: Updated comment
  - error: Forbidden, not found, or storage failures
*/
func (service *Service) UpdateComment(context context.Context, actor sec.Actor, titleID, reviewID, commentID uuid.UUID, input CommentInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !actor.CanModifyContent(comment.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify this comment")
	}

	comment.Text = input.Text

	if err := service.commentRepository.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
DeleteComment removes a comment. The author may delete their own comment;
moderators and administrators may delete anyone's.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - titleID: uuid.UUID
  - reviewID: uuid.UUID
  - commentID: uuid.UUID

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) DeleteComment(context context.Context, actor sec.Actor, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !actor.CanModifyContent(comment.AuthorID) {
		return apperr.Forbidden("You cannot modify this comment")
	}

	if err := service.commentRepository.Delete(context, comment.ID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", comment.ID.String()),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Internal Helpers

// validateScore bounds a review score to the allowed range.
func validateScore(score int) error {
	if score < ScoreMin || score > ScoreMax {
		return apperr.ValidationError("Score is out of range",
			apperr.FieldError{Field: FieldScore, Message: "must be between 1 and 10"})
	}
	return nil
}
