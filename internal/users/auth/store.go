// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		TouchLogin records a successful code exchange by bumping lastloginat.

		Bumping the timestamp changes the identity state every confirmation
		code is derived from, so a consumed code can never validate again.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - at: time.Time

		Returns:
		  - error: Persistence failures
	*/
	TouchLogin(context context.Context, userID string, at time.Time) error
}

// # Volatile Data Access

// NonceRepository defines the contract for storing per-user issuance nonces.
//
// The nonce is the only stored ingredient of a confirmation code. Rotating it
// invalidates every previously derived code for the user; deleting it makes
// the account temporarily un-exchangeable until the next signup.
type NonceRepository interface {

	/*
		Rotate replaces the user's issuance nonce with a fresh value.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - string: The newly stored nonce
		  - error: Persistence failures
	*/
	Rotate(context context.Context, userID string, ttl time.Duration) (string, error)

	/*
		Get retrieves the user's current issuance nonce.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - string: Nonce value
		  - error: apperr.NotFound if absent or expired
	*/
	Get(context context.Context, userID string) (string, error)

	/*
		Delete removes the user's issuance nonce after a successful exchange.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, userID string) error
}
