// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuo-app/revuo/internal/platform/constants"
	"github.com/revuo-app/revuo/internal/platform/middleware"
	requestutil "github.com/revuo-app/revuo/internal/platform/request"
	"github.com/revuo-app/revuo/internal/platform/respond"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/internal/platform/validate"
	"github.com/revuo-app/revuo/internal/users/auth"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements user administration and self-service HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with user management routes.
//
// # Endpoints
//   - GET    /            : Admin directory listing.
//   - POST   /            : Admin account provisioning.
//   - GET    /me          : Own profile.
//   - PATCH  /me          : Own profile update (role immutable).
//   - GET    /{username}  : Admin account lookup.
//   - PATCH  /{username}  : Admin account update (role mutable).
//   - DELETE /{username}  : Admin soft-deletion.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service endpoints. Registered first so the static "me" segment
	// wins over the {username} wildcard.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)
	})

	// Administration endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

type updateRequest struct {
	Email     *string `json:"email,omitempty"`
	Role      *string `json:"role,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

// updateMeRequest intentionally has no role field: self-service updates can
// never change authorization level.
type updateMeRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

/*
List returns a paginated admin directory of accounts.

GET /api/v1/users?page=&limit=&search=

Response:
  - 200: []User with pagination meta
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.accountService.List(request.Context(), actor, params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create provisions a new account administratively.

POST /api/v1/users

Response:
  - 201: User: Created account
  - 400: ErrValidation: Bad input or identity conflict
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.UsernameMaxLen).
		Username(auth.FieldUsername, input.Username).
		NotOneOf(auth.FieldUsername, input.Username, constants.ReservedUsernameMe).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.EmailMaxLen).
		Email(auth.FieldEmail, input.Email)

	// Password is optional for admin-provisioned accounts; validate only when present.
	if input.Password != "" {
		validator.MinLen(auth.FieldPassword, input.Password, auth.PasswordMinLen).
			MaxLen(auth.FieldPassword, input.Password, auth.PasswordMaxLen)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), actor, CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		Role:      sec.UserRole(input.Role),
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Get returns a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: User
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetByUsername(request.Context(), actor, requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update patches an account's fields, including its role.

PATCH /api/v1/users/{username}

Response:
  - 200: User: Updated account
  - 400: ErrValidation: Unknown role or constraint violation
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	serviceInput := UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		serviceInput.Role = &role
	}

	user, err := handler.accountService.Update(request.Context(), actor, requestutil.Param(request, "username"), serviceInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Delete soft-deletes an account by username.

DELETE /api/v1/users/{username}

Response:
  - 204: No Content
  - 403: ErrForbidden: Caller is not an administrator
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Delete(request.Context(), actor, requestutil.Param(request, "username")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
Me returns the acting user's own profile.

GET /api/v1/users/me

Response:
  - 200: User
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Me(request.Context(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateMe patches the acting user's own profile. Role cannot be changed here.

PATCH /api/v1/users/me

Response:
  - 200: User: Updated profile
  - 400: ErrValidation: Constraint violation
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), actor, UpdateMeInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
