// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package reference

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
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Category Repository

// PostgresCategoryRepository implements CategoryRepository using pgx.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL implementation of CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

/*
List returns a page of categories ordered by name, and the total count.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string

Returns:
  - []Category: Page of categories
  - int: Total matching rows
  - error: Database execution errors
*/
func (repository *PostgresCategoryRepository) List(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	return listVocabulary[Category](context, repository.pool, schema.RefCategory.Table, params, search,
		func(row pgx.Rows, total *int) (Category, error) {
			var category Category
			err := row.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt, total)
			return category, err
		})
}

/*
FindBySlug resolves a slug into its category.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCategoryRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	query := "SELECT id, name, slug, createdat FROM " + schema.RefCategory.Table + " WHERE slug = $1"

	category := &Category{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&category.ID, &category.Name, &category.Slug, &category.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, fmt.Errorf("postgres_category_repo_find_failed: %w", err)
	}

	return category, nil
}

/*
Create persists a new category.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: Validation (duplicate slug) or execution errors
*/
func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	query := "INSERT INTO " + schema.RefCategory.Table + " (id, name, slug, createdat) VALUES ($1, $2, $3, $4)"

	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		category.ID, category.Name, category.Slug, category.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "category_create")
	}

	return nil
}

/*
DeleteBySlug removes a category. The titles FK is ON DELETE SET NULL, so
affected titles simply become uncategorized.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresCategoryRepository) DeleteBySlug(context context.Context, slug string) error {
	query := "DELETE FROM " + schema.RefCategory.Table + " WHERE slug = $1"

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return fmt.Errorf("postgres_category_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category not found")
	}

	return nil
}

// # Genre Repository

// PostgresGenreRepository implements GenreRepository using pgx.
type PostgresGenreRepository struct {
	pool *pgxpool.Pool
}

// NewGenreRepository creates a new PostgreSQL implementation of GenreRepository.
func NewGenreRepository(pool *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{pool: pool}
}

/*
List returns a page of genres ordered by name, and the total count.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string

Returns:
  - []Genre: Page of genres
  - int: Total matching rows
  - error: Database execution errors
*/
func (repository *PostgresGenreRepository) List(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	return listVocabulary[Genre](context, repository.pool, schema.RefGenre.Table, params, search,
		func(row pgx.Rows, total *int) (Genre, error) {
			var genre Genre
			err := row.Scan(&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt, total)
			return genre, err
		})
}

/*
FindBySlug resolves a slug into its genre.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Genre: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresGenreRepository) FindBySlug(context context.Context, slug string) (*Genre, error) {
	query := "SELECT id, name, slug, createdat FROM " + schema.RefGenre.Table + " WHERE slug = $1"

	genre := &Genre{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Genre not found")
		}
		return nil, fmt.Errorf("postgres_genre_repo_find_failed: %w", err)
	}

	return genre, nil
}

/*
Create persists a new genre.

Parameters:
  - context: context.Context
  - genre: *Genre

Returns:
  - error: Validation (duplicate slug) or execution errors
*/
func (repository *PostgresGenreRepository) Create(context context.Context, genre *Genre) error {
	query := "INSERT INTO " + schema.RefGenre.Table + " (id, name, slug, createdat) VALUES ($1, $2, $3, $4)"

	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		genre.ID, genre.Name, genre.Slug, genre.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "genre_create")
	}

	return nil
}

/*
DeleteBySlug removes a genre. The junction rows cascade away with it.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresGenreRepository) DeleteBySlug(context context.Context, slug string) error {
	query := "DELETE FROM " + schema.RefGenre.Table + " WHERE slug = $1"

	tag, err := repository.pool.Exec(context, query, slug)
	if err != nil {
		return fmt.Errorf("postgres_genre_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Genre not found")
	}

	return nil
}

// # Shared Query Helpers

// listVocabulary runs the shared paginated name-search query for both
// vocabulary tables. The scan callback hydrates one row plus the windowed
// total count.
func listVocabulary[T any](
	context context.Context,
	pool *pgxpool.Pool,
	table string,
	params pagination.Params,
	search string,
	scan func(pgx.Rows, *int) (T, error),
) ([]T, int, error) {

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString("SELECT id, name, slug, createdat, COUNT(*) OVER() AS total_count FROM " + table)

	if search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE name ILIKE $%d", argID))
		args = append(args, "%"+search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, params.Limit, params.Offset())

	rows, err := pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_reference_list_failed: %w", err)
	}
	defer rows.Close()

	var items []T
	var total int

	for rows.Next() {
		item, err := scan(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_reference_list_scan_failed: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_reference_list_rows_failed: %w", err)
	}

	return items, total, nil
}
