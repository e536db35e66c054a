// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package account

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
	"github.com/revuo-app/revuo/internal/users/auth"
	"github.com/revuo-app/revuo/pkg/pagination"
	"github.com/revuo-app/revuo/pkg/pointer"
)

// # Test Doubles

type fakeAccountRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{users: make(map[string]*auth.User)}
}

func (repository *fakeAccountRepository) List(_ context.Context, params pagination.Params, search string) ([]auth.User, int, error) {
	var matched []auth.User
	for _, user := range repository.users {
		if search == "" || strings.Contains(user.Username, search) {
			matched = append(matched, *user)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	total := len(matched)
	offset := params.Offset()
	if offset > total {
		return nil, total, nil
	}
	end := offset + params.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repository *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (repository *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (repository *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	delete(repository.users, id)
	return nil
}

// # Harness

func newAccountFixture(t *testing.T) (*Service, *fakeAccountRepository) {
	t.Helper()
	repository := newFakeAccountRepository()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, quiet), repository
}

var (
	adminActor = sec.Actor{ID: "admin-1", Username: "boss", Role: sec.RoleAdmin}
	plainActor = sec.Actor{ID: "user-1", Username: "reader", Role: sec.RoleUser}
)

func seedUser(t *testing.T, repository *fakeAccountRepository, id, username string, role sec.UserRole) {
	t.Helper()
	require.NoError(t, repository.Create(context.Background(), &auth.User{
		ID: id, Username: username, Email: username + "@example.com", Role: role,
	}))
}

// # Administration

func TestCreateRequiresAdmin(t *testing.T) {
	service, _ := newAccountFixture(t)

	_, err := service.Create(context.Background(), plainActor, CreateInput{
		Username: "newbie", Email: "newbie@example.com",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
}

func TestCreateDefaultsRole(t *testing.T) {
	service, _ := newAccountFixture(t)

	user, err := service.Create(context.Background(), adminActor, CreateInput{
		Username: "newbie", Email: "newbie@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
}

func TestCreateHashesOptionalPassword(t *testing.T) {
	service, _ := newAccountFixture(t)

	user, err := service.Create(context.Background(), adminActor, CreateInput{
		Username: "newbie", Email: "newbie@example.com", Password: "opening-night",
	})

	require.NoError(t, err)
	require.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "opening-night", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("opening-night", user.PasswordHash))
}

func TestCreateWithoutPasswordStaysPasswordless(t *testing.T) {
	service, _ := newAccountFixture(t)

	user, err := service.Create(context.Background(), adminActor, CreateInput{
		Username: "newbie", Email: "newbie@example.com",
	})

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestCreateRejectsUnknownRole(t *testing.T) {
	service, _ := newAccountFixture(t)

	_, err := service.Create(context.Background(), adminActor, CreateInput{
		Username: "newbie", Email: "newbie@example.com", Role: sec.UserRole("wizard"),
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestAdminCanChangeRole(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)

	updated, err := service.Update(context.Background(), adminActor, "reader", UpdateInput{
		Role: pointer.To(sec.RoleModerator),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

func TestSuperuserActsAsAdmin(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)

	superuser := sec.Actor{ID: "root-1", Username: "root", Role: sec.RoleUser, IsSuperuser: true}

	_, err := service.GetByUsername(context.Background(), superuser, "reader")
	assert.NoError(t, err)
}

func TestListIsAdminOnly(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)
	seedUser(t, repository, "user-2", "writer", sec.RoleUser)

	_, _, err := service.List(context.Background(), plainActor, pagination.Params{Page: 1, Limit: 10}, "")
	assert.Error(t, err)

	users, total, err := service.List(context.Background(), adminActor, pagination.Params{Page: 1, Limit: 10}, "read")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "reader", users[0].Username)
}

func TestDeleteIsAdminOnly(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)

	require.Error(t, service.Delete(context.Background(), plainActor, "reader"))
	require.NoError(t, service.Delete(context.Background(), adminActor, "reader"))

	_, err := repository.FindByUsername(context.Background(), "reader")
	assert.Error(t, err)
}

// # Self Service

func TestUpdateMeCannotChangeRole(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)

	updated, err := service.UpdateMe(context.Background(), plainActor, UpdateMeInput{
		Bio: pointer.To("I review things."),
	})

	require.NoError(t, err)
	assert.Equal(t, "I review things.", updated.Bio)

	// The role must survive any self-service update unchanged.
	assert.Equal(t, sec.RoleUser, updated.Role)
}

func TestMeReturnsOwnProfile(t *testing.T) {
	service, repository := newAccountFixture(t)
	seedUser(t, repository, "user-1", "reader", sec.RoleUser)

	user, err := service.Me(context.Background(), plainActor)
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
}
