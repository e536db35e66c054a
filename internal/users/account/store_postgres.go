// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/database/schema"
	"github.com/revuo-app/revuo/internal/platform/dberr"
	"github.com/revuo-app/revuo/internal/users/auth"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Account Repository

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

const userColumns = "id, username, email, passwordhash, role, issuperuser, firstname, lastname, bio, lastloginat, createdat, updatedat"

/*
List returns a page of accounts ordered by username, and the total count.

Description: Uses the COUNT(*) OVER() window function to retrieve the total
record count without a second query.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string (case-insensitive username substring, empty for all)

Returns:
  - []auth.User: Page of accounts
  - int: Total matching rows
  - error: Database execution errors
*/
func (repository *PostgresAccountRepository) List(context context.Context, params pagination.Params, search string) ([]auth.User, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + userColumns + `,
			COUNT(*) OVER() AS total_count
		FROM ` + schema.UserAccount.Table + `
		WHERE deletedat IS NULL
	`)

	// Username substring filter
	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND username ILIKE $%d", argID))
		args = append(args, "%"+search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY username ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []auth.User
	var total int

	for rows.Next() {
		var user auth.User
		if err := rows.Scan(
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
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_rows_failed: %w", err)
	}

	return users, total, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := "SELECT " + userColumns + " FROM " + schema.UserAccount.Table + " WHERE username = $1 AND deletedat IS NULL"
	return repository.scanOne(repository.pool.QueryRow(context, query, username), "find_by_username")
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := "SELECT " + userColumns + " FROM " + schema.UserAccount.Table + " WHERE id = $1 AND deletedat IS NULL"
	return repository.scanOne(repository.pool.QueryRow(context, query, id), "find_by_id")
}

/*
Create persists an administratively provisioned account.

Description: Constraint violations (duplicate username or email) surface as
client-safe validation errors via dberr.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Validation or execution errors
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
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
		return dberr.Wrap(err, "account_create")
	}

	return nil
}

/*
Update persists changes to a user's mutable fields, including role.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Validation or execution errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := `
		UPDATE ` + schema.UserAccount.Table + `
		SET email = $2, role = $3, firstname = $4, lastname = $5, bio = $6, updatedat = $7
		WHERE id = $1 AND deletedat IS NULL`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.Role,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "account_update")
	}

	return nil
}

/*
SoftDelete marks a user account as deleted using their ID.

Description: Retention-friendly deletion by setting deletedat.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Side-effect failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	query := "UPDATE " + schema.UserAccount.Table + " SET deletedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_account_repo_soft_delete_failed: %w", err)
	}
	return nil
}

// scanOne hydrates a single account row, mapping absence to apperr.NotFound.
func (repository *PostgresAccountRepository) scanOne(row pgx.Row, action string) (*auth.User, error) {
	user := &auth.User{}
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
		return nil, fmt.Errorf("postgres_account_repo_%s_failed: %w", action, err)
	}

	return user, nil
}
