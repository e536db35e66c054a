// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/middleware"
	requestutil "github.com/revuo-app/revuo/internal/platform/request"
	"github.com/revuo-app/revuo/internal/platform/respond"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/internal/platform/validate"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] for /titles.
//
// # Endpoints
//   - GET    /           : Public filtered listing.
//   - GET    /{titleID}  : Public single lookup.
//   - POST   /           : Admin creation.
//   - PATCH  /{titleID}  : Admin partial update.
//   - DELETE /{titleID}  : Admin deletion.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Patch("/{titleID}", handler.update)
		r.Delete("/{titleID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Genres      []string `json:"genres,omitempty"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genres      *[]string `json:"genres,omitempty"`
}

// TitleID parses the {titleID} path parameter.
func TitleID(request *http.Request) (uuid.UUID, error) {
	titleID, err := uuid.Parse(requestutil.ID(request, "titleID"))
	if err != nil {
		return uuid.Nil, apperr.ValidationError("Invalid title ID")
	}
	return titleID, nil
}

// # Endpoints

/*
List returns a filtered, paginated page of catalog titles.

GET /api/v1/titles?page=&limit=&category=&genre=&name=&year=

Response:
  - 200: []Title with pagination meta
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}

	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Invalid year filter",
				apperr.FieldError{Field: FieldYear, Message: "must be an integer"}))
			return
		}
		filter.Year = &year
	}

	titles, total, err := handler.titleService.List(request.Context(), params, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Get returns a single title.

GET /api/v1/titles/{titleID}

Response:
  - 200: Title
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := TitleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Create adds a title to the catalog.

POST /api/v1/titles

Response:
  - 201: Title: Created entity
  - 400: ErrValidation: Bad input, unknown category or genre
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldCategorySlug, input.Category).
		Custom(FieldYear, input.Year == 0, "is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), actor, CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
Update applies a partial update to a title.

PATCH /api/v1/titles/{titleID}

Response:
  - 200: Title: Updated entity
  - 400: ErrValidation: Bad input, unknown category or genre
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := TitleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, NameMaxLen)
	}
	if input.Category != nil {
		validator.Required(FieldCategorySlug, *input.Category)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), actor, titleID, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genres,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
Delete removes a title and everything reviewed under it.

DELETE /api/v1/titles/{titleID}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := TitleID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), actor, titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
