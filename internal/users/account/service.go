// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/internal/users/auth"
	"github.com/revuo-app/revuo/pkg/pagination"
	"github.com/revuo-app/revuo/pkg/uuid"
)

// # Service Layer

// Service orchestrates user administration and self-service profile logic.
//
// Admin-only operations check the actor's privileges here rather than relying
// solely on route-level guards, so the policy holds even if a handler wires
// the service differently.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Administration

/*
List returns a page of user accounts for the admin directory.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - params: pagination.Params
  - search: string (username substring filter, empty for all)

Returns:
  - []auth.User: Page of accounts
  - int: Total matching rows
  - error: Forbidden or retrieval failures
*/
func (service *Service) List(context context.Context, actor sec.Actor, params pagination.Params, search string) ([]auth.User, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperr.Forbidden("Administrator access required")
	}

	users, total, err := service.accountRepository.List(context, params, search)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return users, total, nil
}

// CreateInput defines the fields an administrator provisions a user with.
type CreateInput struct {
	Username  string
	Email     string
	Role      sec.UserRole
	Password  string // Optional; empty leaves the account passwordless.
	FirstName string
	LastName  string
	Bio       string
}

/*
Create provisions a new user account administratively.

Description: Unlike signup, no confirmation code is issued. The account is
usable as soon as its owner completes a signup with the same identity pair.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: Forbidden, validation, or storage failures
*/
func (service *Service) Create(context context.Context, actor sec.Actor, input CreateInput) (*auth.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	role := input.Role
	if role == "" {
		role = sec.RoleUser
	}
	if !role.IsValid() {
		return nil, apperr.ValidationError("Unknown role",
			apperr.FieldError{Field: auth.FieldRole, Message: "must be one of: user, moderator, admin"})
	}

	var passwordHash string
	if input.Password != "" {
		hashed, err := sec.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_password_failed: %w", err)
		}
		passwordHash = hashed
	}

	user := &auth.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		Role:         role,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Bio:          input.Bio,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_account_provisioned",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return user, nil
}

/*
GetByUsername retrieves a single account for the admin directory.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - username: string

Returns:
  - *auth.User: The account
  - error: Forbidden, not found, or retrieval failures
*/
func (service *Service) GetByUsername(context context.Context, actor sec.Actor, username string) (*auth.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateInput defines the mutable subset of account fields an admin may patch.
type UpdateInput struct {
	Email     *string
	Role      *sec.UserRole
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
Update applies a partial set of changes to a user's account, including role.

Description: Role changes take effect immediately for new tokens; previously
issued confirmation codes for the user stop validating because the code
derivation includes the role.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Forbidden, validation, or storage failures
*/
func (service *Service) Update(context context.Context, actor sec.Actor, username string, input UpdateInput) (*auth.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperr.ValidationError("Unknown role",
				apperr.FieldError{Field: auth.FieldRole, Message: "must be one of: user, moderator, admin"})
		}
		user.Role = *input.Role
	}

	applyProfileDelta(user, input.Email, input.FirstName, input.LastName, input.Bio)

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_account_updated",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return user, nil
}

/*
Delete performs an idempotent soft-deletion of a user account by username.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - username: string

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) Delete(context context.Context, actor sec.Actor, username string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Administrator access required")
	}

	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.SoftDelete(context, user.ID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	service.logger.Warn("user_account_deleted",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Self Service

/*
Me retrieves the full private identity of the acting user.

Parameters:
  - context: context.Context
  - actor: sec.Actor

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) Me(context context.Context, actor sec.Actor) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_me_failed: %w", err)
	}
	return user, nil
}

// UpdateMeInput defines the fields a user may change on their own profile.
// Role is deliberately absent: self-service updates can never escalate.
type UpdateMeInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

/*
UpdateMe applies a partial set of changes to the acting user's own profile.

Description: The role field is not part of the input contract, so the
actor's role is guaranteed to survive the update unchanged.

Parameters:
  - context: context.Context
  - actor: sec.Actor
  - input: UpdateMeInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateMe(context context.Context, actor sec.Actor, input UpdateMeInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_me_lookup_failed: %w", err)
	}

	applyProfileDelta(user, input.Email, input.FirstName, input.LastName, input.Bio)

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", user.ID))

	return user, nil
}

// applyProfileDelta overwrites only the provided profile fields.
func applyProfileDelta(user *auth.User, email, firstName, lastName, bio *string) {
	if email != nil {
		user.Email = *email
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
