// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/database/schema"
	"github.com/revuo-app/revuo/internal/platform/dberr"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Review Repository

// PostgresReviewRepository implements ReviewRepository using pgx.
type PostgresReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a new PostgreSQL implementation of ReviewRepository.
func NewReviewRepository(pool *pgxpool.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

const reviewSelect = `
	SELECT r.id, r.titleid, r.authorid, a.username, r.text, r.score, r.createdat, r.updatedat`

/*
ListByTitle returns a page of reviews for one title, newest first.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID
  - params: pagination.Params

Returns:
  - []Review: Page of reviews
  - int: Total reviews on the title
  - error: Database execution errors
*/
func (repository *PostgresReviewRepository) ListByTitle(context context.Context, titleID uuid.UUID, params pagination.Params) ([]Review, int, error) {
	query := reviewSelect + `, COUNT(*) OVER() AS total_count
	FROM ` + schema.SocialReview.Table + ` r
	JOIN ` + schema.UserAccount.Table + ` a ON a.id = r.authorid
	WHERE r.titleid = $1
	ORDER BY r.createdat DESC
	LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_review_list_failed: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	var total int

	for rows.Next() {
		var review Review
		if err := rows.Scan(
			&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
			&review.Text, &review.Score, &review.CreatedAt, &review.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_review_list_scan_failed: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_review_list_rows_failed: %w", err)
	}

	return reviews, total, nil
}

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
func (repository *PostgresReviewRepository) FindByID(context context.Context, titleID, reviewID uuid.UUID) (*Review, error) {
	query := reviewSelect + `
	FROM ` + schema.SocialReview.Table + ` r
	JOIN ` + schema.UserAccount.Table + ` a ON a.id = r.authorid
	WHERE r.id = $1 AND r.titleid = $2`

	var review Review
	err := repository.pool.QueryRow(context, query, reviewID, titleID).Scan(
		&review.ID, &review.TitleID, &review.AuthorID, &review.Author,
		&review.Text, &review.Score, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Review not found")
		}
		return nil, fmt.Errorf("postgres_review_find_failed: %w", err)
	}

	return &review, nil
}

/*
Create persists a new review. The (title, author) uniqueness constraint
turns a second review by the same user into a validation error.

Parameters:
  - context: context.Context
  - review: *Review (ID assigned by caller)

Returns:
  - error: Duplicate review, constraint violations, or execution errors
*/
func (repository *PostgresReviewRepository) Create(context context.Context, review *Review) error {
	row := repository.pool.QueryRow(context,
		`INSERT INTO `+schema.SocialReview.Table+` (id, titleid, authorid, text, score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING createdat, updatedat`,
		review.ID, review.TitleID, review.AuthorID, review.Text, review.Score,
	)
	if err := row.Scan(&review.CreatedAt, &review.UpdatedAt); err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.ValidationError("You have already reviewed this title")
		}
		return dberr.Wrap(err, "review_create")
	}
	return nil
}

/*
Update writes the review text and score.

Parameters:
  - context: context.Context
  - review: *Review

Returns:
  - error: Not found or execution errors
*/
func (repository *PostgresReviewRepository) Update(context context.Context, review *Review) error {
	row := repository.pool.QueryRow(context,
		`UPDATE `+schema.SocialReview.Table+`
		 SET text = $1, score = $2, updatedat = now()
		 WHERE id = $3
		 RETURNING updatedat`,
		review.Text, review.Score, review.ID,
	)
	if err := row.Scan(&review.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Review not found")
		}
		return dberr.Wrap(err, "review_update")
	}
	return nil
}

/*
Delete removes a review. Its comments cascade in the database.

Parameters:
  - context: context.Context
  - reviewID: uuid.UUID

Returns:
  - error: Not found or execution errors
*/
func (repository *PostgresReviewRepository) Delete(context context.Context, reviewID uuid.UUID) error {
	tag, err := repository.pool.Exec(context, "DELETE FROM "+schema.SocialReview.Table+" WHERE id = $1", reviewID)
	if err != nil {
		return fmt.Errorf("postgres_review_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review not found")
	}
	return nil
}

// # Comment Repository

// PostgresCommentRepository implements CommentRepository using pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new PostgreSQL implementation of CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.reviewid, c.authorid, a.username, c.text, c.createdat, c.updatedat`

/*
ListByReview returns a page of comments for one review, oldest first.

Parameters:
  - context: context.Context
  - reviewID: uuid.UUID
  - params: pagination.Params

Returns:
  - []Comment: Page of comments
  - int: Total comments on the review
  - error: Database execution errors
*/
func (repository *PostgresCommentRepository) ListByReview(context context.Context, reviewID uuid.UUID, params pagination.Params) ([]Comment, int, error) {
	query := commentSelect + `, COUNT(*) OVER() AS total_count
	FROM ` + schema.SocialComment.Table + ` c
	JOIN ` + schema.UserAccount.Table + ` a ON a.id = c.authorid
	WHERE c.reviewid = $1
	ORDER BY c.createdat ASC
	LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_list_failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	var total int

	for rows.Next() {
		var comment Comment
		if err := rows.Scan(
			&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
			&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_list_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_list_rows_failed: %w", err)
	}

	return comments, total, nil
}

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
func (repository *PostgresCommentRepository) FindByID(context context.Context, reviewID, commentID uuid.UUID) (*Comment, error) {
	query := commentSelect + `
	FROM ` + schema.SocialComment.Table + ` c
	JOIN ` + schema.UserAccount.Table + ` a ON a.id = c.authorid
	WHERE c.id = $1 AND c.reviewid = $2`

	var comment Comment
	err := repository.pool.QueryRow(context, query, commentID, reviewID).Scan(
		&comment.ID, &comment.ReviewID, &comment.AuthorID, &comment.Author,
		&comment.Text, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("postgres_comment_find_failed: %w", err)
	}

	return &comment, nil
}

/*
Create persists a new comment.

Parameters:
  - context: context.Context
  - comment: *Comment (ID assigned by caller)

Returns:
  - error: Constraint violations or execution errors
*/
func (repository *PostgresCommentRepository) Create(context context.Context, comment *Comment) error {
	row := repository.pool.QueryRow(context,
		`INSERT INTO `+schema.SocialComment.Table+` (id, reviewid, authorid, text)
		 VALUES ($1, $2, $3, $4)
		 RETURNING createdat, updatedat`,
		comment.ID, comment.ReviewID, comment.AuthorID, comment.Text,
	)
	if err := row.Scan(&comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return dberr.Wrap(err, "comment_create")
	}
	return nil
}

/*
Update writes the comment text.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Not found or execution errors
*/
func (repository *PostgresCommentRepository) Update(context context.Context, comment *Comment) error {
	row := repository.pool.QueryRow(context,
		`UPDATE `+schema.SocialComment.Table+`
		 SET text = $1, updatedat = now()
		 WHERE id = $2
		 RETURNING updatedat`,
		comment.Text, comment.ID,
	)
	if err := row.Scan(&comment.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Comment not found")
		}
		return dberr.Wrap(err, "comment_update")
	}
	return nil
}

/*
Delete removes a comment.

Parameters:
  - context: context.Context
  - commentID: uuid.UUID

Returns:
  - error: Not found or execution errors
*/
func (repository *PostgresCommentRepository) Delete(context context.Context, commentID uuid.UUID) error {
	tag, err := repository.pool.Exec(context, "DELETE FROM "+schema.SocialComment.Table+" WHERE id = $1", commentID)
	if err != nil {
		return fmt.Errorf("postgres_comment_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}
	return nil
}
