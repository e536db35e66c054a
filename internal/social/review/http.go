// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/middleware"
	requestutil "github.com/revuo-app/revuo/internal/platform/request"
	"github.com/revuo-app/revuo/internal/platform/respond"
	"github.com/revuo-app/revuo/internal/platform/validate"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the review and comment HTTP endpoints. The router
// is mounted under /titles/{titleID}/reviews so every request carries
// the owning title in its path.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] for /titles/{titleID}/reviews.
//
// # Endpoints
//   - GET    /                                  : Public review listing.
//   - GET    /{reviewID}                        : Public review lookup.
//   - POST   /                                  : Authenticated review creation.
//   - PATCH  /{reviewID}                        : Author or moderator edit.
//   - DELETE /{reviewID}                        : Author or moderator deletion.
//   - GET    /{reviewID}/comments               : Public comment listing.
//   - GET    /{reviewID}/comments/{commentID}   : Public comment lookup.
//   - POST   /{reviewID}/comments               : Authenticated comment creation.
//   - PATCH  /{reviewID}/comments/{commentID}   : Author or moderator edit.
//   - DELETE /{reviewID}/comments/{commentID}   : Author or moderator deletion.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)
	router.Get("/{reviewID}/comments", handler.listComments)
	router.Get("/{reviewID}/comments/{commentID}", handler.getComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createReview)
		r.Patch("/{reviewID}", handler.updateReview)
		r.Delete("/{reviewID}", handler.deleteReview)
		r.Post("/{reviewID}/comments", handler.createComment)
		r.Patch("/{reviewID}/comments/{commentID}", handler.updateComment)
		r.Delete("/{reviewID}/comments/{commentID}", handler.deleteComment)
	})

	return router
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// pathID parses one UUID path parameter, failing as a validation error.
func pathID(request *http.Request, name, label string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(requestutil.ID(request, name))
	if err != nil {
		return uuid.Nil, apperr.ValidationError("Invalid " + label + " ID")
	}
	return parsed, nil
}

// # Review Endpoints

/*
ListReviews returns a paginated page of reviews on a title.

GET /api/v1/titles/{titleID}/reviews?page=&limit=

Response:
  - 200: []Review with pagination meta
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.reviewService.ListReviews(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetReview returns a single review.

GET /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 200: Review
  - 404: ErrNotFound: Unknown review
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
CreateReview publishes the caller's review of a title.

POST /api/v1/titles/{titleID}/reviews

Response:
  - 201: Review: Created review
  - 400: ErrValidation: Bad input or duplicate review
  - 401: ErrUnauthorized: Missing authentication
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLen).
		Range(FieldScore, input.Score, ScoreMin, ScoreMax)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), actor, titleID, ReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
UpdateReview applies a partial edit to a review.

PATCH /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 200: Review: Updated review
  - 400: ErrValidation: Bad input
  - 403: ErrForbidden: Caller is neither the author nor a moderator
  - 404: ErrNotFound: Unknown review
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		validator.Required(FieldText, *input.Text).
			MaxLen(FieldText, *input.Text, TextMaxLen)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.UpdateReview(request.Context(), actor, titleID, reviewID, ReviewUpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DeleteReview removes a review and its comments.

DELETE /api/v1/titles/{titleID}/reviews/{reviewID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is neither the author nor a moderator
  - 404: ErrNotFound: Unknown review
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteReview(request.Context(), actor, titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

/*
ListComments returns a paginated page of comments under a review.

GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments?page=&limit=

Response:
  - 200: []Comment with pagination meta
  - 404: ErrNotFound: Unknown review
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetComment returns a single comment.

GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 200: Comment
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := pathID(request, "commentID", "comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
CreateComment attaches the caller's comment to a review.

POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments

Response:
  - 201: Comment: Created comment
  - 400: ErrValidation: Bad input
  - 401: ErrUnauthorized: Missing authentication
  - 404: ErrNotFound: Unknown review
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.CreateComment(request.Context(), actor, titleID, reviewID, CommentInput{
		Text: input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
UpdateComment rewrites a comment body.

PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 200: Comment: Updated comment
  - 400: ErrValidation: Bad input
  - 403: ErrForbidden: Caller is neither the author nor a moderator
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := pathID(request, "commentID", "comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, TextMaxLen)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.UpdateComment(request.Context(), actor, titleID, reviewID, commentID, CommentInput{
		Text: input.Text,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DeleteComment removes a comment.

DELETE /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is neither the author nor a moderator
  - 404: ErrNotFound: Unknown comment
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := pathID(request, "titleID", "title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	reviewID, err := pathID(request, "reviewID", "review")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID, err := pathID(request, "commentID", "comment")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteComment(request.Context(), actor, titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
