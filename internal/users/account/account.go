// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

/*
Package account handles user administration and self-service profile management.

It provides the admin-facing user directory (list, create, update, delete by
username) and the /users/me self-service endpoints.

# Architecture

  - Entities: This package depends on the auth package for the User entity.
  - Policy: Every mutating operation takes an explicit [sec.Actor] argument.
  - Security: Role changes are admin-only; self-service updates ignore role.
*/
package account

import (
	"context"

	"github.com/revuo-app/revuo/internal/users/auth"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user administration.
type AccountRepository interface {
	/*
		List returns a page of accounts, optionally filtered by a username
		substring search.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - search: string (empty means no filter)

		Returns:
		  - []auth.User: Page of accounts
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params, search string) ([]auth.User, int, error)

	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Create persists an administratively provisioned account.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error
}
