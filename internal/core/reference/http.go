// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuo-app/revuo/internal/platform/middleware"
	requestutil "github.com/revuo-app/revuo/internal/platform/request"
	"github.com/revuo-app/revuo/internal/platform/respond"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/internal/platform/validate"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the classification vocabulary HTTP endpoints.
type Handler struct {
	referenceService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{referenceService: service}
}

// CategoryRoutes returns a [chi.Router] for /categories.
//
// # Endpoints
//   - GET    /        : Public paginated listing with name search.
//   - GET    /{slug}  : Public single lookup.
//   - POST   /        : Admin creation (slug auto-derived when omitted).
//   - DELETE /{slug}  : Admin deletion.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{slug}", handler.getCategory)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createCategory)
		r.Delete("/{slug}", handler.deleteCategory)
	})

	return router
}

// GenreRoutes returns a [chi.Router] for /genres with the same shape as categories.
func (handler *Handler) GenreRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listGenres)
	router.Get("/{slug}", handler.getGenre)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.createGenre)
		r.Delete("/{slug}", handler.deleteGenre)
	})

	return router
}

// # Request Payloads

type createVocabularyRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// validateVocabulary runs the shared checks for category and genre creation.
func validateVocabulary(input createVocabularyRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen)

	if input.Slug != "" {
		validator.MaxLen(FieldSlug, input.Slug, SlugMaxLen).
			Slug(FieldSlug, input.Slug)
	}

	return validator.Err()
}

// # Category Endpoints

/*
ListCategories returns a paginated page of categories.

GET /api/v1/categories?page=&limit=&search=

Response:
  - 200: []Category with pagination meta
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	categories, total, err := handler.referenceService.ListCategories(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetCategory returns a single category by slug.

GET /api/v1/categories/{slug}

Response:
  - 200: Category
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.referenceService.GetCategory(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
CreateCategory persists a new category.

POST /api/v1/categories

Response:
  - 201: Category: Created entity
  - 400: ErrValidation: Bad input or duplicate slug
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createVocabularyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateVocabulary(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.referenceService.CreateCategory(request.Context(), actor, CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DeleteCategory removes a category by slug.

DELETE /api/v1/categories/{slug}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.referenceService.DeleteCategory(request.Context(), actor, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Genre Endpoints

/*
ListGenres returns a paginated page of genres.

GET /api/v1/genres?page=&limit=&search=

Response:
  - 200: []Genre with pagination meta
*/
func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	genres, total, err := handler.referenceService.ListGenres(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetGenre returns a single genre by slug.

GET /api/v1/genres/{slug}

Response:
  - 200: Genre
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) getGenre(writer http.ResponseWriter, request *http.Request) {
	genre, err := handler.referenceService.GetGenre(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genre)
}

/*
CreateGenre persists a new genre.

POST /api/v1/genres

Response:
  - 201: Genre: Created entity
  - 400: ErrValidation: Bad input or duplicate slug
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createVocabularyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateVocabulary(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	genre, err := handler.referenceService.CreateGenre(request.Context(), actor, CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

/*
DeleteGenre removes a genre by slug.

DELETE /api/v1/genres/{slug}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.referenceService.DeleteGenre(request.Context(), actor, requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
