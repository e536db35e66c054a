// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package review

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuo-app/revuo/internal/core/title"
	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Fakes

type fakeReviewRepository struct {
	byID map[uuid.UUID]*Review
}

func newFakeReviewRepository() *fakeReviewRepository {
	return &fakeReviewRepository{byID: make(map[uuid.UUID]*Review)}
}

func (repository *fakeReviewRepository) ListByTitle(_ context.Context, titleID uuid.UUID, params pagination.Params) ([]Review, int, error) {
	var reviews []Review
	for _, review := range repository.byID {
		if review.TitleID == titleID {
			reviews = append(reviews, *review)
		}
	}
	return reviews, len(reviews), nil
}

func (repository *fakeReviewRepository) FindByID(_ context.Context, titleID, reviewID uuid.UUID) (*Review, error) {
	review, ok := repository.byID[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, apperr.NotFound("Review not found")
	}
	clone := *review
	return &clone, nil
}

func (repository *fakeReviewRepository) Create(_ context.Context, review *Review) error {
	for _, existing := range repository.byID {
		if existing.TitleID == review.TitleID && existing.AuthorID == review.AuthorID {
			return apperr.ValidationError("You have already reviewed this title")
		}
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	clone := *review
	repository.byID[review.ID] = &clone
	return nil
}

func (repository *fakeReviewRepository) Update(_ context.Context, review *Review) error {
	if _, ok := repository.byID[review.ID]; !ok {
		return apperr.NotFound("Review not found")
	}
	review.UpdatedAt = time.Now()
	clone := *review
	repository.byID[review.ID] = &clone
	return nil
}

func (repository *fakeReviewRepository) Delete(_ context.Context, reviewID uuid.UUID) error {
	if _, ok := repository.byID[reviewID]; !ok {
		return apperr.NotFound("Review not found")
	}
	delete(repository.byID, reviewID)
	return nil
}

type fakeCommentRepository struct {
	byID map[uuid.UUID]*Comment
}

func newFakeCommentRepository() *fakeCommentRepository {
	return &fakeCommentRepository{byID: make(map[uuid.UUID]*Comment)}
}

func (repository *fakeCommentRepository) ListByReview(_ context.Context, reviewID uuid.UUID, params pagination.Params) ([]Comment, int, error) {
	var comments []Comment
	for _, comment := range repository.byID {
		if comment.ReviewID == reviewID {
			comments = append(comments, *comment)
		}
	}
	return comments, len(comments), nil
}

func (repository *fakeCommentRepository) FindByID(_ context.Context, reviewID, commentID uuid.UUID) (*Comment, error) {
	comment, ok := repository.byID[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment not found")
	}
	clone := *comment
	return &clone, nil
}

func (repository *fakeCommentRepository) Create(_ context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	repository.byID[comment.ID] = &clone
	return nil
}

func (repository *fakeCommentRepository) Update(_ context.Context, comment *Comment) error {
	if _, ok := repository.byID[comment.ID]; !ok {
		return apperr.NotFound("Comment not found")
	}
	comment.UpdatedAt = time.Now()
	clone := *comment
	repository.byID[comment.ID] = &clone
	return nil
}

func (repository *fakeCommentRepository) Delete(_ context.Context, commentID uuid.UUID) error {
	if _, ok := repository.byID[commentID]; !ok {
		return apperr.NotFound("Comment not found")
	}
	delete(repository.byID, commentID)
	return nil
}

type fakeTitleResolver struct {
	known map[uuid.UUID]bool
}

func (resolver *fakeTitleResolver) FindByID(_ context.Context, titleID uuid.UUID) (*title.Title, error) {
	if !resolver.known[titleID] {
		return nil, apperr.NotFound("Title not found")
	}
	return &title.Title{ID: titleID, Name: "Known Title"}, nil
}

// # Fixtures

var (
	authorActor    = sec.Actor{ID: "author-1", Username: "alice", Role: sec.RoleUser}
	strangerActor  = sec.Actor{ID: "stranger-1", Username: "bob", Role: sec.RoleUser}
	moderatorActor = sec.Actor{ID: "mod-1", Username: "carol", Role: sec.RoleModerator}
)

type reviewFixture struct {
	service  *Service
	reviews  *fakeReviewRepository
	comments *fakeCommentRepository
	titleID  uuid.UUID
}

func newReviewFixture(t *testing.T) reviewFixture {
	t.Helper()

	reviews := newFakeReviewRepository()
	comments := newFakeCommentRepository()
	titleID := uuid.New()
	resolver := &fakeTitleResolver{known: map[uuid.UUID]bool{titleID: true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return reviewFixture{
		service:  NewService(reviews, comments, resolver, logger),
		reviews:  reviews,
		comments: comments,
		titleID:  titleID,
	}
}

func (fixture reviewFixture) seedReview(t *testing.T, actor sec.Actor) *Review {
	t.Helper()

	review, err := fixture.service.CreateReview(context.Background(), actor, fixture.titleID, ReviewInput{
		Text:  "A thorough classic",
		Score: 8,
	})
	require.NoError(t, err)
	return review
}

// # Review Tests

func TestCreateReviewHappyPath(t *testing.T) {
	fixture := newReviewFixture(t)

	review := fixture.seedReview(t, authorActor)

	assert.Equal(t, authorActor.ID, review.AuthorID)
	assert.Equal(t, authorActor.Username, review.Author)
	assert.Equal(t, 8, review.Score)
	assert.Len(t, fixture.reviews.byID, 1)
}

func TestCreateReviewOncePerTitle(t *testing.T) {
	fixture := newReviewFixture(t)

	fixture.seedReview(t, authorActor)

	_, err := fixture.service.CreateReview(context.Background(), authorActor, fixture.titleID, ReviewInput{
		Text:  "Changed my mind",
		Score: 3,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Len(t, fixture.reviews.byID, 1)

	// A different user still gets their own review.
	_, err = fixture.service.CreateReview(context.Background(), strangerActor, fixture.titleID, ReviewInput{
		Text:  "Disagree entirely",
		Score: 2,
	})
	require.NoError(t, err)
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	fixture := newReviewFixture(t)

	_, err := fixture.service.CreateReview(context.Background(), authorActor, uuid.New(), ReviewInput{
		Text:  "Reviewing thin air",
		Score: 5,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateReviewScoreOutOfRange(t *testing.T) {
	fixture := newReviewFixture(t)

	for _, score := range []int{0, 11, -4} {
		_, err := fixture.service.CreateReview(context.Background(), authorActor, fixture.titleID, ReviewInput{
			Text:  "Off the scale",
			Score: score,
		})
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	fixture := newReviewFixture(t)
	review := fixture.seedReview(t, authorActor)

	newText := "Revised opinion"

	// A stranger cannot edit someone else's review.
	_, err := fixture.service.UpdateReview(context.Background(), strangerActor, fixture.titleID, review.ID, ReviewUpdateInput{
		Text: &newText,
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)

	// The author can.
	updated, err := fixture.service.UpdateReview(context.Background(), authorActor, fixture.titleID, review.ID, ReviewUpdateInput{
		Text: &newText,
	})
	require.NoError(t, err)
	assert.Equal(t, newText, updated.Text)
	assert.Equal(t, 8, updated.Score)

	// So can a moderator.
	newScore := 4
	updated, err = fixture.service.UpdateReview(context.Background(), moderatorActor, fixture.titleID, review.ID, ReviewUpdateInput{
		Score: &newScore,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Score)
}

func TestDeleteReviewOwnership(t *testing.T) {
	fixture := newReviewFixture(t)
	review := fixture.seedReview(t, authorActor)

	err := fixture.service.DeleteReview(context.Background(), strangerActor, fixture.titleID, review.ID)
	require.Error(t, err)
	assert.Len(t, fixture.reviews.byID, 1)

	require.NoError(t, fixture.service.DeleteReview(context.Background(), moderatorActor, fixture.titleID, review.ID))
	assert.Empty(t, fixture.reviews.byID)
}

func TestListReviewsUnknownTitle(t *testing.T) {
	fixture := newReviewFixture(t)

	_, _, err := fixture.service.ListReviews(context.Background(), uuid.New(), pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Comment Tests

func TestCreateCommentHappyPath(t *testing.T) {
	fixture := newReviewFixture(t)
	review := fixture.seedReview(t, authorActor)

	comment, err := fixture.service.CreateComment(context.Background(), strangerActor, fixture.titleID, review.ID, CommentInput{
		Text: "Well argued",
	})
	require.NoError(t, err)

	assert.Equal(t, strangerActor.ID, comment.AuthorID)
	assert.Equal(t, review.ID, comment.ReviewID)
}

func TestCreateCommentUnknownReview(t *testing.T) {
	fixture := newReviewFixture(t)

	_, err := fixture.service.CreateComment(context.Background(), strangerActor, fixture.titleID, uuid.New(), CommentInput{
		Text: "Lost thread",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateCommentOwnership(t *testing.T) {
	fixture := newReviewFixture(t)
	review := fixture.seedReview(t, authorActor)

	comment, err := fixture.service.CreateComment(context.Background(), strangerActor, fixture.titleID, review.ID, CommentInput{
		Text: "First thought",
	})
	require.NoError(t, err)

	// The review author does not own the comment.
	_, err = fixture.service.UpdateComment(context.Background(), authorActor, fixture.titleID, review.ID, comment.ID, CommentInput{
		Text: "Hijacked",
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)

	// The comment author can edit it.
	updated, err := fixture.service.UpdateComment(context.Background(), strangerActor, fixture.titleID, review.ID, comment.ID, CommentInput{
		Text: "Second thought",
	})
	require.NoError(t, err)
	assert.Equal(t, "Second thought", updated.Text)
}

func TestDeleteCommentModerator(t *testing.T) {
	fixture := newReviewFixture(t)
	review := fixture.seedReview(t, authorActor)

	comment, err := fixture.service.CreateComment(context.Background(), strangerActor, fixture.titleID, review.ID, CommentInput{
		Text: "Soon gone",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.DeleteComment(context.Background(), moderatorActor, fixture.titleID, review.ID, comment.ID))
	assert.Empty(t, fixture.comments.byID)
}
