// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package auth implements the passwordless identity flow.

It handles signup (confirmation code issuance via email) and the exchange of a
username plus code for an RSA-signed JWT access token.

Architecture:

  - Service: Orchestrates business logic (Signup, ExchangeToken).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Nonces).
  - Security: Codes are HMAC-derived from identity state and never stored.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/mailer"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - isSuperuser: Whether the account carries the superuser flag.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, isSuperuser bool, timeToLive time.Duration) (string, error)
}

// CodeProvider defines the contract for deriving and checking confirmation codes.
type CodeProvider interface {
	// Derive computes the confirmation code for the given identity state.
	Derive(state sec.CodeState) string

	// Verify compares a presented code against the current identity state.
	Verify(state sec.CodeState, code string) bool
}

// Service implements the signup and token exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code derivation,
// issuance, or exchange logic must be reviewed by the security team.
type Service struct {
	userRepository  UserRepository
	nonceRepository NonceRepository
	codeProvider    CodeProvider
	tokenProvider   TokenProvider
	mailSender      mailer.Mailer
	logger          *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	nonceRepo NonceRepository,
	codeProv CodeProvider,
	tokenProv TokenProvider,
	mailSender mailer.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:  userRepo,
		nonceRepository: nonceRepo,
		codeProvider:    codeProv,
		tokenProvider:   tokenProv,
		mailSender:      mailSender,
		logger:          logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Username string
	Email    string
}

// SignupResult echoes the identity a code was issued for.
type SignupResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup creates or re-confirms an account and emails a confirmation code.

Description: Idempotent enrollment. A repeat signup with the exact same
(username, email) pair rotates the issuance nonce and emails a fresh code,
invalidating the previous one. A signup where either field collides with a
different existing identity is rejected.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: The identity the code was issued for
  - error: Validation or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)

	switch {
	case err == nil:
		// Existing username: the email must match exactly, otherwise someone
		// is trying to claim a taken name.
		if user.Email != input.Email {
			return nil, apperr.ValidationError("Username is already taken",
				apperr.FieldError{Field: FieldUsername, Message: "already registered with a different email"})
		}

	case apperr.IsNotFound(err):
		// Fresh username: the email must not belong to someone else.
		if _, emailErr := service.userRepository.FindByEmail(context, input.Email); emailErr == nil {
			return nil, apperr.ValidationError("Email is already registered",
				apperr.FieldError{Field: FieldEmail, Message: "already registered with a different username"})
		}

		// Time-sortable ID to prevent PG index fragmentation.
		user = &User{
			ID:       uuid.New(),
			Username: input.Username,
			Email:    input.Email,
			Role:     sec.RoleUser,
		}

		if createErr := service.userRepository.Create(context, user); createErr != nil {
			return nil, fmt.Errorf("auth_service_signup_create_failed: %w", createErr)
		}

	default:
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Rotate the issuance nonce. This is what invalidates any previously
	// issued code for this user.
	nonce, err := service.nonceRepository.Rotate(context, user.ID, CodeNonceTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_signup_nonce_failed: %w", err)
	}

	// Derive the code from the current identity state.
	code := service.codeProvider.Derive(service.codeState(user, nonce))

	// Deliver by email. Delivery failure is logged, not surfaced: the user
	// can always sign up again to trigger a new code.
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n\nExchange it at /api/v1/auth/token within 24 hours.", user.Username, code)
	if err := service.mailSender.Send(context, user.Email, codeMailSubject, body); err != nil {
		service.logger.ErrorContext(context, "auth_service_code_mail_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	return &SignupResult{Username: user.Username, Email: user.Email}, nil
}

// # Token Exchange Flow

// ExchangeInput holds the credentials presented for a token exchange.
type ExchangeInput struct {
	Username         string
	ConfirmationCode string
}

/*
ExchangeToken swaps a valid (username, confirmation code) pair for a JWT.

Description: Verifies the code against the user's current identity state,
then consumes it: the nonce is deleted and lastloginat is bumped, so the
same code can never be exchanged twice.

Parameters:
  - context: context.Context
  - input: ExchangeInput

Returns:
  - string: Signed JWT access token
  - error: Validation or internal failures
*/
func (service *Service) ExchangeToken(context context.Context, input ExchangeInput) (string, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			// Same response as a wrong code to prevent username enumeration.
			return "", errInvalidExchange()
		}
		return "", fmt.Errorf("auth_service_exchange_lookup_failed: %w", err)
	}

	nonce, err := service.nonceRepository.Get(context, user.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", errInvalidExchange()
		}
		return "", fmt.Errorf("auth_service_exchange_nonce_failed: %w", err)
	}

	// Constant-time comparison against the code derived from current state.
	if !service.codeProvider.Verify(service.codeState(user, nonce), input.ConfirmationCode) {
		return "", errInvalidExchange()
	}

	// Consume the code: drop the nonce and bump the login timestamp. Either
	// change alone is enough to make the presented code stop validating.
	if err := service.nonceRepository.Delete(context, user.ID); err != nil {
		return "", fmt.Errorf("auth_service_exchange_consume_failed: %w", err)
	}
	if err := service.userRepository.TouchLogin(context, user.ID, time.Now()); err != nil {
		return "", fmt.Errorf("auth_service_exchange_touch_failed: %w", err)
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsSuperuser, AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_exchange_token_failed: %w", err)
	}

	return token, nil
}

// codeState assembles the identity snapshot a confirmation code binds to.
func (service *Service) codeState(user *User, nonce string) sec.CodeState {
	return sec.CodeState{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		LastLoginAt:  user.LastLoginAt,
		Nonce:        nonce,
	}
}

// errInvalidExchange is the uniform rejection for every bad exchange attempt.
// Unknown usernames and wrong codes are indistinguishable to the caller.
func errInvalidExchange() error {
	return apperr.ValidationError("Invalid username or confirmation code")
}
