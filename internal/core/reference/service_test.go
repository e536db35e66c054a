// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package reference

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/pkg/pagination"
)

// # Fakes

type fakeCategoryRepository struct {
	bySlug map[string]*Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{bySlug: make(map[string]*Category)}
}

func (repository *fakeCategoryRepository) List(_ context.Context, params pagination.Params, search string) ([]Category, int, error) {
	categories := make([]Category, 0, len(repository.bySlug))
	for _, category := range repository.bySlug {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, len(categories), nil
}

func (repository *fakeCategoryRepository) FindBySlug(_ context.Context, slug string) (*Category, error) {
	category, ok := repository.bySlug[slug]
	if !ok {
		return nil, apperr.NotFound("Category not found")
	}
	clone := *category
	return &clone, nil
}

func (repository *fakeCategoryRepository) Create(_ context.Context, category *Category) error {
	if _, ok := repository.bySlug[category.Slug]; ok {
		return apperr.ValidationError("Slug is already taken",
			apperr.FieldError{Field: FieldSlug, Message: "already exists"})
	}
	clone := *category
	repository.bySlug[category.Slug] = &clone
	return nil
}

func (repository *fakeCategoryRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := repository.bySlug[slug]; !ok {
		return apperr.NotFound("Category not found")
	}
	delete(repository.bySlug, slug)
	return nil
}

type fakeGenreRepository struct {
	bySlug map[string]*Genre
}

func newFakeGenreRepository() *fakeGenreRepository {
	return &fakeGenreRepository{bySlug: make(map[string]*Genre)}
}

func (repository *fakeGenreRepository) List(_ context.Context, params pagination.Params, search string) ([]Genre, int, error) {
	genres := make([]Genre, 0, len(repository.bySlug))
	for _, genre := range repository.bySlug {
		genres = append(genres, *genre)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, len(genres), nil
}

func (repository *fakeGenreRepository) FindBySlug(_ context.Context, slug string) (*Genre, error) {
	genre, ok := repository.bySlug[slug]
	if !ok {
		return nil, apperr.NotFound("Genre not found")
	}
	clone := *genre
	return &clone, nil
}

func (repository *fakeGenreRepository) Create(_ context.Context, genre *Genre) error {
	if _, ok := repository.bySlug[genre.Slug]; ok {
		return apperr.ValidationError("Slug is already taken",
			apperr.FieldError{Field: FieldSlug, Message: "already exists"})
	}
	clone := *genre
	repository.bySlug[genre.Slug] = &clone
	return nil
}

func (repository *fakeGenreRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := repository.bySlug[slug]; !ok {
		return apperr.NotFound("Genre not found")
	}
	delete(repository.bySlug, slug)
	return nil
}

// # Fixtures

var (
	adminActor = sec.Actor{ID: "admin-1", Username: "boss", Role: sec.RoleAdmin}
	plainActor = sec.Actor{ID: "user-1", Username: "reader", Role: sec.RoleUser}
)

func newTestService(t *testing.T) (*Service, *fakeCategoryRepository, *fakeGenreRepository) {
	t.Helper()

	categories := newFakeCategoryRepository()
	genres := newFakeGenreRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewService(categories, genres, logger), categories, genres
}

// # Tests

func TestCreateCategoryDerivesSlugFromName(t *testing.T) {
	service, _, _ := newTestService(t)

	category, err := service.CreateCategory(context.Background(), adminActor, CreateInput{Name: "Science Fiction"})
	require.NoError(t, err)

	assert.Equal(t, "science-fiction", category.Slug)
	assert.Equal(t, "Science Fiction", category.Name)
	assert.NotEqual(t, "", category.ID.String())
}

func TestCreateCategoryKeepsExplicitSlug(t *testing.T) {
	service, _, _ := newTestService(t)

	category, err := service.CreateCategory(context.Background(), adminActor, CreateInput{
		Name: "Science Fiction",
		Slug: "sci-fi",
	})
	require.NoError(t, err)

	assert.Equal(t, "sci-fi", category.Slug)
}

func TestCreateCategoryRejectsUnsluggableName(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateCategory(context.Background(), adminActor, CreateInput{Name: "!!!"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	service, categories, _ := newTestService(t)

	_, err := service.CreateCategory(context.Background(), plainActor, CreateInput{Name: "Drama"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
	assert.Empty(t, categories.bySlug)
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateCategory(context.Background(), adminActor, CreateInput{Name: "Drama"})
	require.NoError(t, err)

	_, err = service.CreateCategory(context.Background(), adminActor, CreateInput{Name: "Drama"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestDeleteCategoryRequiresAdmin(t *testing.T) {
	service, categories, _ := newTestService(t)

	_, err := service.CreateCategory(context.Background(), adminActor, CreateInput{Name: "Drama"})
	require.NoError(t, err)

	err = service.DeleteCategory(context.Background(), plainActor, "drama")
	require.Error(t, err)
	assert.Len(t, categories.bySlug, 1)

	require.NoError(t, service.DeleteCategory(context.Background(), adminActor, "drama"))
	assert.Empty(t, categories.bySlug)
}

func TestGetCategoryUnknownSlug(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.GetCategory(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGenreLifecycle(t *testing.T) {
	service, _, genres := newTestService(t)

	created, err := service.CreateGenre(context.Background(), adminActor, CreateInput{Name: "Space Opera"})
	require.NoError(t, err)
	assert.Equal(t, "space-opera", created.Slug)

	found, err := service.GetGenre(context.Background(), "space-opera")
	require.NoError(t, err)
	assert.Equal(t, created.Name, found.Name)

	listed, total, err := service.ListGenres(context.Background(), pagination.Params{Page: 1, Limit: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, listed, 1)

	require.NoError(t, service.DeleteGenre(context.Background(), adminActor, "space-opera"))
	assert.Empty(t, genres.bySlug)
}

func TestSuperuserCreatesVocabulary(t *testing.T) {
	service, _, _ := newTestService(t)

	superActor := sec.Actor{ID: "super-1", Username: "root", Role: sec.RoleUser, IsSuperuser: true}

	_, err := service.CreateGenre(context.Background(), superActor, CreateInput{Name: "Horror"})
	require.NoError(t, err)
}
