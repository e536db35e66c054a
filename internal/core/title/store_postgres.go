// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package title

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revuo-app/revuo/internal/core/reference"
	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/database/schema"
	"github.com/revuo-app/revuo/internal/platform/dberr"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// PostgresTitleRepository implements TitleRepository using pgx.
type PostgresTitleRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of TitleRepository.
func NewRepository(pool *pgxpool.Pool) *PostgresTitleRepository {
	return &PostgresTitleRepository{pool: pool}
}

// titleSelect is the shared projection. The rating subquery averages review
// scores on read so the catalog never stores a denormalized rating.
var titleSelect = `
	SELECT
		t.id, t.name, t.year, t.description, t.createdat, t.updatedat,
		c.id, c.name, c.slug, c.createdat,
		(SELECT AVG(r.score)::float8 FROM ` + schema.SocialReview.Table + ` r WHERE r.titleid = t.id) AS rating`

// # Read Methods

/*
List returns a page of titles matching the filter, newest first, with
category, genres, and rating hydrated, plus the total match count.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - filter: Filter

Returns:
  - []Title: Page of titles
  - int: Total matching rows
  - error: Database execution errors
*/
func (repository *PostgresTitleRepository) List(context context.Context, params pagination.Params, filter Filter) ([]Title, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(titleSelect)
	queryBuilder.WriteString(`, COUNT(*) OVER() AS total_count
	FROM ` + schema.CoreTitle.Table + ` t
	LEFT JOIN ` + schema.RefCategory.Table + ` c ON c.id = t.categoryid
	WHERE 1=1`)

	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.slug = $%d", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	if filter.GenreSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM `+schema.CoreTitleGenre.Table+` tg
			JOIN `+schema.RefGenre.Table+` g ON g.id = tg.genreid
			WHERE tg.titleid = t.id AND g.slug = $%d)`, argID))
		args = append(args, filter.GenreSlug)
		argID++
	}

	if filter.Name != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.name ILIKE $%d", argID))
		args = append(args, "%"+filter.Name+"%")
		argID++
	}

	if filter.Year != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND t.year = $%d", argID))
		args = append(args, *filter.Year)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY t.createdat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_title_list_failed: %w", err)
	}
	defer rows.Close()

	var titles []Title
	var total int

	for rows.Next() {
		title, err := scanTitle(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_title_list_scan_failed: %w", err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_title_list_rows_failed: %w", err)
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

/*
FindByID resolves a title ID into the fully hydrated entity.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID

Returns:
  - *Title: Found title
  - error: Not found or execution errors
*/
func (repository *PostgresTitleRepository) FindByID(context context.Context, titleID uuid.UUID) (*Title, error) {
	query := titleSelect + `
	FROM ` + schema.CoreTitle.Table + ` t
	LEFT JOIN ` + schema.RefCategory.Table + ` c ON c.id = t.categoryid
	WHERE t.id = $1`

	rows, err := repository.pool.Query(context, query, titleID)
	if err != nil {
		return nil, fmt.Errorf("postgres_title_find_failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("postgres_title_find_rows_failed: %w", err)
		}
		return nil, apperr.NotFound("Title not found")
	}

	title, err := scanTitle(rows, nil)
	if err != nil {
		return nil, fmt.Errorf("postgres_title_find_scan_failed: %w", err)
	}
	rows.Close()

	titles := []Title{title}
	if err := repository.attachGenres(context, titles); err != nil {
		return nil, err
	}

	return &titles[0], nil
}

// # Write Methods

/*
Create persists a new title and its genre junction rows in one transaction.

Parameters:
  - context: context.Context
  - title: *Title (ID assigned by caller)
  - genreIDs: []uuid.UUID

Returns:
  - error: Constraint violations or execution errors
*/
func (repository *PostgresTitleRepository) Create(context context.Context, title *Title, genreIDs []uuid.UUID) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_create_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	var categoryID *uuid.UUID
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	row := transaction.QueryRow(context,
		`INSERT INTO `+schema.CoreTitle.Table+` (id, name, year, description, categoryid)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING createdat, updatedat`,
		title.ID, title.Name, title.Year, title.Description, categoryID,
	)
	if err := row.Scan(&title.CreatedAt, &title.UpdatedAt); err != nil {
		return dberr.Wrap(err, "title_create")
	}

	if err := insertGenreLinks(context, transaction, title.ID, genreIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_create_commit_failed: %w", err)
	}

	return nil
}

/*
Update writes the title columns and, when requested, replaces the genre
junction rows, all in one transaction.

Parameters:
  - context: context.Context
  - title: *Title (carries the new column values)
  - genreIDs: []uuid.UUID
  - replaceGenres: bool

Returns:
  - error: Not found, constraint violations, or execution errors
*/
func (repository *PostgresTitleRepository) Update(context context.Context, title *Title, genreIDs []uuid.UUID, replaceGenres bool) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_title_update_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	var categoryID *uuid.UUID
	if title.Category != nil {
		categoryID = &title.Category.ID
	}

	row := transaction.QueryRow(context,
		`UPDATE `+schema.CoreTitle.Table+`
		 SET name = $1, year = $2, description = $3, categoryid = $4, updatedat = now()
		 WHERE id = $5
		 RETURNING updatedat`,
		title.Name, title.Year, title.Description, categoryID, title.ID,
	)
	if err := row.Scan(&title.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Title not found")
		}
		return dberr.Wrap(err, "title_update")
	}

	if replaceGenres {
		if _, err := transaction.Exec(context,
			"DELETE FROM "+schema.CoreTitleGenre.Table+" WHERE titleid = $1", title.ID); err != nil {
			return fmt.Errorf("postgres_title_update_clear_genres_failed: %w", err)
		}
		if err := insertGenreLinks(context, transaction, title.ID, genreIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_title_update_commit_failed: %w", err)
	}

	return nil
}

/*
Delete removes a title. Reviews and comments cascade in the database.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID

Returns:
  - error: Not found or execution errors
*/
func (repository *PostgresTitleRepository) Delete(context context.Context, titleID uuid.UUID) error {
	tag, err := repository.pool.Exec(context, "DELETE FROM "+schema.CoreTitle.Table+" WHERE id = $1", titleID)
	if err != nil {
		return fmt.Errorf("postgres_title_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title not found")
	}
	return nil
}

// # Row Helpers

// scanTitle hydrates one projection row. total may be nil when the query
// carries no window count column.
func scanTitle(rows pgx.Rows, total *int) (Title, error) {
	var title Title
	var categoryID *uuid.UUID
	var categoryName, categorySlug *string
	var categoryCreatedAt *time.Time

	targets := []any{
		&title.ID, &title.Name, &title.Year, &title.Description,
		&title.CreatedAt, &title.UpdatedAt,
		&categoryID, &categoryName, &categorySlug, &categoryCreatedAt,
		&title.Rating,
	}
	if total != nil {
		targets = append(targets, total)
	}

	if err := rows.Scan(targets...); err != nil {
		return Title{}, err
	}

	if categoryID != nil {
		title.Category = &reference.Category{
			ID:        *categoryID,
			Name:      *categoryName,
			Slug:      *categorySlug,
			CreatedAt: *categoryCreatedAt,
		}
	}

	title.Genres = []reference.Genre{}

	return title, nil
}

// insertGenreLinks writes the junction rows for one title.
func insertGenreLinks(context context.Context, transaction pgx.Tx, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	for _, genreID := range genreIDs {
		if _, err := transaction.Exec(context,
			"INSERT INTO "+schema.CoreTitleGenre.Table+" (titleid, genreid) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			titleID, genreID,
		); err != nil {
			return dberr.Wrap(err, "title_genre_link")
		}
	}
	return nil
}

// attachGenres loads the genre sets for a slice of titles with one query.
func (repository *PostgresTitleRepository) attachGenres(context context.Context, titles []Title) error {
	if len(titles) == 0 {
		return nil
	}

	titleIDs := make([]uuid.UUID, 0, len(titles))
	index := make(map[uuid.UUID]*Title, len(titles))
	for i := range titles {
		titleIDs = append(titleIDs, titles[i].ID)
		index[titles[i].ID] = &titles[i]
	}

	rows, err := repository.pool.Query(context,
		`SELECT tg.titleid, g.id, g.name, g.slug, g.createdat
		 FROM `+schema.CoreTitleGenre.Table+` tg
		 JOIN `+schema.RefGenre.Table+` g ON g.id = tg.genreid
		 WHERE tg.titleid = ANY($1)
		 ORDER BY g.name ASC`,
		titleIDs,
	)
	if err != nil {
		return fmt.Errorf("postgres_title_genres_failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var titleID uuid.UUID
		var genre reference.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug, &genre.CreatedAt); err != nil {
			return fmt.Errorf("postgres_title_genres_scan_failed: %w", err)
		}
		if title, ok := index[titleID]; ok {
			title.Genres = append(title.Genres, genre)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres_title_genres_rows_failed: %w", err)
	}

	return nil
}
