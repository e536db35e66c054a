// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/database/schema"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO ` + schema.UserAccount.Table + ` (
			id, username, email, passwordhash, role, issuperuser, firstname, lastname, bio, lastloginat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsSuperuser,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.LastLoginAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: Not found or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `
		SELECT id, username, email, passwordhash, role, issuperuser, firstname, lastname, bio, lastloginat, createdat, updatedat
		FROM ` + schema.UserAccount.Table + `
		WHERE id = $1 AND deletedat IS NULL`

	return repository.scanOne(repository.pool.QueryRow(context, query, id), "find_by_id")
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup by username for signup and token resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, email, passwordhash, role, issuperuser, firstname, lastname, bio, lastloginat, createdat, updatedat
		FROM ` + schema.UserAccount.Table + `
		WHERE username = $1 AND deletedat IS NULL`

	return repository.scanOne(repository.pool.QueryRow(context, query, username), "find_by_username")
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a lookup on the account table, filtering out soft-deleted users.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `
		SELECT id, username, email, passwordhash, role, issuperuser, firstname, lastname, bio, lastloginat, createdat, updatedat
		FROM ` + schema.UserAccount.Table + `
		WHERE email = $1 AND deletedat IS NULL`

	return repository.scanOne(repository.pool.QueryRow(context, query, email), "find_by_email")
}

/*
TouchLogin bumps the lastloginat timestamp after a successful exchange.

Parameters:
  - context: context.Context
  - userID: string
  - at: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) TouchLogin(context context.Context, userID string, at time.Time) error {
	query := "UPDATE " + schema.UserAccount.Table + " SET lastloginat = $2, updatedat = $2 WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, userID, at)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_touch_login_failed: %w", err)
	}
	return nil
}

// scanOne hydrates a single User row, mapping absence to apperr.NotFound.
func (repository *PostgresUserRepository) scanOne(row pgx.Row, action string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsSuperuser,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", action, err)
	}

	return user, nil
}
