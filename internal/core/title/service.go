// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package title

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/revuo-app/revuo/internal/core/reference"
	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Definitions & Constructors

// Service implements the catalog business logic. Reads are public;
// every write requires an administrator actor.
type Service struct {
	titleRepository    TitleRepository
	categoryRepository reference.CategoryRepository
	genreRepository    reference.GenreRepository
	logger             *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(
	titleRepo TitleRepository,
	categoryRepo reference.CategoryRepository,
	genreRepo reference.GenreRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		titleRepository:    titleRepo,
		categoryRepository: categoryRepo,
		genreRepository:    genreRepo,
		logger:             logger,
	}
}

// CreateInput carries the fields for a new title. CategorySlug is
// required; GenreSlugs may be empty.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

// UpdateInput carries a partial title update. Nil fields are left
// untouched; a non-nil GenreSlugs replaces the full genre set.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// # Read Methods

/*
List returns a page of catalog titles matching the filter.

Parameters:
  - context: context.Context
  - params: pagination.Params
  - filter: Filter

Returns:
  - []Title: Page of titles
  - int: Total matching rows
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params, filter Filter) ([]Title, int, error) {
	return service.titleRepository.List(context, params, filter)
}

/*
Get returns one title by ID.

Parameters:
  - context: context.Context
  - titleID: uuid.UUID

Returns:
  - *Title: Found title
  - error: Not found or retrieval failures
*/
func (service *Service) Get(context context.Context, titleID uuid.UUID) (*Title, error) {
	return service.titleRepository.FindByID(context, titleID)
}

// # Write Methods

/*
Create adds a title to the catalog. The category and every genre slug
must already exist; the release year cannot lie in the future.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - input: CreateInput

Returns:
  - *Title: Created title with category and genres hydrated
  - error: Forbidden, validation, or storage failures
*/
func (service *Service) Create(context context.Context, actor sec.Actor, input CreateInput) (*Title, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	// 1. Resolve the category slug.
	category, err := service.categoryRepository.FindBySlug(context, input.CategorySlug)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.ValidationError("Unknown category",
				apperr.FieldError{Field: FieldCategorySlug, Message: "does not exist"})
		}
		return nil, err
	}

	// 2. Resolve the genre slugs.
	genres, genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	// 3. Persist the title and its genre links.
	title := &Title{
		ID:          uuid.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    category,
		Genres:      genres,
	}

	if err := service.titleRepository.Create(context, title, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.String("title_id", title.ID.String()),
		slog.String("actor_id", actor.ID),
	)

	return title, nil
}

/*
Update applies a partial update to a title. Only non-nil input fields
change; a non-nil genre list replaces the full set.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - titleID: uuid.UUID
  - input: UpdateInput

Returns:
  - *Title: Updated title
  - error: Forbidden, not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, actor sec.Actor, titleID uuid.UUID, input UpdateInput) (*Title, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Administrator access required")
	}

	title, err := service.titleRepository.FindByID(context, titleID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		if err := validateYear(*input.Year); err != nil {
			return nil, err
		}
		title.Year = *input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}

	if input.CategorySlug != nil {
		category, err := service.categoryRepository.FindBySlug(context, *input.CategorySlug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, apperr.ValidationError("Unknown category",
					apperr.FieldError{Field: FieldCategorySlug, Message: "does not exist"})
			}
			return nil, err
		}
		title.Category = category
	}

	var genreIDs []uuid.UUID
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genres, resolvedIDs, err := service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
		title.Genres = genres
		genreIDs = resolvedIDs
	}

	if err := service.titleRepository.Update(context, title, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated",
		slog.String("title_id", title.ID.String()),
		slog.String("actor_id", actor.ID),
	)

	return title, nil
}

/*
Delete removes a title and, through the database, its reviews and comments.

Parameters:
  - context: context.Context
  - actor: sec.Actor (must be admin)
  - titleID: uuid.UUID

Returns:
  - error: Forbidden, not found, or execution failures
*/
func (service *Service) Delete(context context.Context, actor sec.Actor, titleID uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Administrator access required")
	}

	if err := service.titleRepository.Delete(context, titleID); err != nil {
		return err
	}

	service.logger.Info("title_deleted",
		slog.String("title_id", titleID.String()),
		slog.String("actor_id", actor.ID),
	)

	return nil
}

// # Internal Helpers

// validateYear rejects release years later than the current calendar year.
func validateYear(year int) error {
	if year > time.Now().Year() {
		return apperr.ValidationError("Release year cannot be in the future",
			apperr.FieldError{Field: FieldYear, Message: "cannot exceed the current year"})
	}
	return nil
}

// resolveGenres maps genre slugs to entities, rejecting unknown slugs.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]reference.Genre, []uuid.UUID, error) {
	genres := make([]reference.Genre, 0, len(slugs))
	genreIDs := make([]uuid.UUID, 0, len(slugs))

	for _, genreSlug := range slugs {
		genre, err := service.genreRepository.FindBySlug(context, genreSlug)
		if err != nil {
			if apperr.IsNotFound(err) {
				return nil, nil, apperr.ValidationError("Unknown genre",
					apperr.FieldError{Field: FieldGenreSlugs, Message: "genre '" + genreSlug + "' does not exist"})
			}
			return nil, nil, err
		}
		genres = append(genres, *genre)
		genreIDs = append(genreIDs, genre.ID)
	}

	return genres, genreIDs, nil
}
