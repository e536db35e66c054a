// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package reference

import (
	"context"

	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Category Data Access

// CategoryRepository defines the persistence contract for categories.
//
// Categories and genres get separate interfaces on purpose: consumers that
// only need one vocabulary should not depend on the other.
type CategoryRepository interface {

	/*
		List returns a page of categories ordered by name, with the total count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - search: string (case-insensitive name substring, empty for all)

		Returns:
		  - []Category: Page of categories
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params, search string) ([]Category, int, error)

	/*
		FindBySlug resolves a slug into its category.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Category: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindBySlug(context context.Context, slug string) (*Category, error)

	/*
		Create persists a new category.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, category *Category) error

	/*
		DeleteBySlug removes a category. Titles filed under it keep existing
		with a null category.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	DeleteBySlug(context context.Context, slug string) error
}

// # Genre Data Access

// GenreRepository defines the persistence contract for genres.
type GenreRepository interface {

	/*
		List returns a page of genres ordered by name, with the total count.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params
		  - search: string (case-insensitive name substring, empty for all)

		Returns:
		  - []Genre: Page of genres
		  - int: Total matching rows
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params, search string) ([]Genre, int, error)

	/*
		FindBySlug resolves a slug into its genre.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Genre: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindBySlug(context context.Context, slug string) (*Genre, error)

	/*
		Create persists a new genre.

		Parameters:
		  - context: context.Context
		  - genre: *Genre

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, genre *Genre) error

	/*
		DeleteBySlug removes a genre and its title associations.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	DeleteBySlug(context context.Context, slug string) error
}
