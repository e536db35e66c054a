// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package auth provides the HTTP delivery layer for the passwordless flow.

It implements the gateway for the identity lifecycle: requesting a
confirmation code and exchanging it for an access token.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revuo-app/revuo/internal/platform/constants"
	requestutil "github.com/revuo-app/revuo/internal/platform/request"
	"github.com/revuo-app/revuo/internal/platform/respond"
	"github.com/revuo-app/revuo/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the identity entry points (Signup, Token exchange).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Creates or re-confirms an account and emails a code.
//   - POST /token  : Exchanges a (username, code) pair for a JWT.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup requests a confirmation code for a new or existing identity.

POST /api/v1/auth/signup

Description: Validates input, creates the account when it does not exist yet,
and emails a freshly derived confirmation code. Re-posting the same pair
invalidates the previous code.

Request:
  - Body: signupRequest (Username, Email)

Response:
  - 200: SignupResult: The identity the code was issued for
  - 400: ErrInvalidJSON: Bad input, reserved username, or identity conflict
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Username(FieldUsername, input.Username).
		NotOneOf(FieldUsername, input.Username, constants.ReservedUsernameMe).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, EmailMaxLen).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Token exchanges a confirmation code for a JWT access token.

POST /api/v1/auth/token

Description: Verifies the presented code against the user's current identity
state and, on success, consumes it and returns a signed access token.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: token: Signed JWT string
  - 400: ErrValidation: Unknown identity or invalid code (indistinguishable)
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.ExchangeToken(request.Context(), ExchangeInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: token})
}
