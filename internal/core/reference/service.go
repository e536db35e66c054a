// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package reference

import (
	"context"
	"log/slog"

	guuid "github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/pagination"
	"github.com/revuo-app/revuo/pkg/slug"
	"github.com/revuo-app/revuo/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the classification vocabulary.
type Service struct {
	categoryRepository CategoryRepository
	genreRepository    GenreRepository
	logger             *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(categoryRepo CategoryRepository, genreRepo GenreRepository, logger *slog.Logger) *Service {
	return &Service{
		categoryRepository: categoryRepo,
		genreRepository:    genreRepo,
		logger:             logger,
	}
}

// CreateInput carries the fields for a new category or genre.
type CreateInput struct {
	Name string
	Slug string // optional; derived from Name when empty
}

// resolveSlug derives the slug from the name when none was supplied.
func (input CreateInput) resolveSlug() (string, error) {
	if input.Slug != "" {
		return input.Slug, nil
	}

	derived := slug.From(input.Name)
	if derived == "" {
		return "", apperr.ValidationError("Cannot derive a slug from this name",
			apperr.FieldError{Field: FieldName, Message: "contains no sluggable characters"})
	}
	if len(derived) > SlugMaxLen {
		derived = derived[:SlugMaxLen]
	}
	return derived, nil
}

// # Category Methods

/*
ListCategories returns a page of categories matching an optional name search.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string

Returns:
  - []Category: Page of categories
  - int: Total matching rows
  - error: Retrieval failures
*/
func (service *Service) ListCategories(context context.Context, params pagination.Params, search string) ([]Category, int, error) {
	return service.categoryRepository.List(context, params, search)
}

/*
GetCategory resolves a slug into its category.

Parameters:
  - context: context.Context
  - categorySlug: string

Returns:
  - *Category: Hydrated entity
  - error: Not found or storage errors
*/
func (service *Service) GetCategory(context context.Context, categorySlug string) (*Category, error) {
	return service.categoryRepository.FindBySlug(context, categorySlug)
}

/*
CreateCategory persists a new category after policy and slug resolution.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - input: CreateInput

Returns:
  - *Category: Created entity
  - error: Forbidden, validation, or storage failures
*/
func (service *Service) CreateCategory(context context.Context, actor sec.Actor, input CreateInput) (*Category, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	resolvedSlug, err := input.resolveSlug()
	if err != nil {
		return nil, err
	}

	category := &Category{
		ID:   guuid.MustParse(uuid.New()),
		Name: input.Name,
		Slug: resolvedSlug,
	}

	if err := service.categoryRepository.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created",
		slog.String("slug", category.Slug),
		slog.String("actor_id", actor.ID),
	)

	return category, nil
}

/*
DeleteCategory removes a category by slug. Titles keep existing uncategorized.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - categorySlug: string

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) DeleteCategory(context context.Context, actor sec.Actor, categorySlug string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Administrator access required")
	}

	if err := service.categoryRepository.DeleteBySlug(context, categorySlug); err != nil {
		return err
	}

	service.logger.Info("category_deleted",
		slog.String("slug", categorySlug),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Genre Methods

/*
ListGenres returns a page of genres matching an optional name search.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - search: string

Returns:
  - []Genre: Page of genres
  - int: Total matching rows
  - error: Retrieval failures
*/
func (service *Service) ListGenres(context context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	return service.genreRepository.List(context, params, search)
}

/*
GetGenre resolves a slug into its genre.

Parameters:
  - context: context.Context
  - genreSlug: string

Returns:
  - *Genre: Hydrated entity
  - error: Not found or storage errors
*/
func (service *Service) GetGenre(context context.Context, genreSlug string) (*Genre, error) {
	return service.genreRepository.FindBySlug(context, genreSlug)
}

/*
CreateGenre persists a new genre after policy and slug resolution.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - input: CreateInput

Returns:
  - *Genre: Created entity
  - error: Forbidden, validation, or storage failures
*/
func (service *Service) CreateGenre(context context.Context, actor sec.Actor, input CreateInput) (*Genre, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	resolvedSlug, err := input.resolveSlug()
	if err != nil {
		return nil, err
	}

	genre := &Genre{
		ID:   guuid.MustParse(uuid.New()),
		Name: input.Name,
		Slug: resolvedSlug,
	}

	if err := service.genreRepository.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created",
		slog.String("slug", genre.Slug),
		slog.String("actor_id", actor.ID),
	)

	return genre, nil
}

/*
DeleteGenre removes a genre by slug along with its title associations.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - genreSlug: string

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) DeleteGenre(context context.Context, actor sec.Actor, genreSlug string) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Administrator access required")
	}

	if err := service.genreRepository.DeleteBySlug(context, genreSlug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted",
		slog.String("slug", genreSlug),
		slog.String("actor_id", actor.ID),
	)

	return nil
}
