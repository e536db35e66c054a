// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package title

import (
	"context"

	"github.com/google/uuid"

	"github.com/revuo-app/revuo/pkg/pagination"
)

// TitleRepository defines the persistence operations for catalog titles.
//
// Genre membership travels with the title: Create and Update receive the
// resolved genre IDs so the junction rows can be written in the same
// transaction as the title row.
type TitleRepository interface {
	/*
		List returns a page of titles matching the filter, with category,
		genres, and computed rating hydrated, plus the total match count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - filter: Filter

		Returns:
		  - []Title: Page of titles
		  - int: Total matching rows
		  - error: Database execution errors
	*/
	List(context context.Context, params pagination.Params, filter Filter) ([]Title, int, error)

	/*
		FindByID resolves a title ID into the fully hydrated entity.

		Parameters:
		  - context: context.Context
		  - titleID: uuid.UUID

		Returns:
		  - *Title: Found title
		  - error: Not found or execution errors
	*/
	FindByID(context context.Context, titleID uuid.UUID) (*Title, error)

	/*
		Create persists a new title together with its genre junction rows.

		Parameters:
		  - context: context.Context
		  - title: *Title (ID assigned by caller)
		  - genreIDs: []uuid.UUID

		Returns:
		  - error: Constraint violations or execution errors
	*/
	Create(context context.Context, title *Title, genreIDs []uuid.UUID) error

	/*
		Update applies the given column deltas. When replaceGenres is true
		the junction rows are replaced with genreIDs atomically.

		Parameters:
		  - context: context.Context
		  - title: *Title (carries the new column values)
		  - genreIDs: []uuid.UUID
		  - replaceGenres: bool

		Returns:
		  - error: Not found, constraint violations, or execution errors
	*/
	Update(context context.Context, title *Title, genreIDs []uuid.UUID, replaceGenres bool) error

	/*
		Delete removes a title. Reviews and comments cascade in the database.

		Parameters:
		  - context: context.Context
		  - titleID: uuid.UUID

		Returns:
		  - error: Not found or execution errors
	*/
	Delete(context context.Context, titleID uuid.UUID) error
}
