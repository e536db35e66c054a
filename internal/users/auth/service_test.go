// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuo-app/revuo/internal/platform/apperr"
	"github.com/revuo-app/revuo/internal/platform/sec"
)

// # Test Doubles

type fakeUserRepository struct {
	users map[string]*User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	if user, ok := repository.users[id]; ok {
		return cloneUser(user), nil
	}
	return nil, apperr.NotFound("User not found")
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range repository.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, apperr.NotFound("User not found")
}

func (repository *fakeUserRepository) Create(_ context.Context, user *User) error {
	repository.users[user.ID] = cloneUser(user)
	return nil
}

func (repository *fakeUserRepository) TouchLogin(_ context.Context, userID string, at time.Time) error {
	user, ok := repository.users[userID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	user.LastLoginAt = at
	return nil
}

func cloneUser(user *User) *User {
	copied := *user
	return &copied
}

type fakeNonceRepository struct {
	nonces  map[string]string
	counter int
}

func newFakeNonceRepository() *fakeNonceRepository {
	return &fakeNonceRepository{nonces: make(map[string]string)}
}

func (repository *fakeNonceRepository) Rotate(_ context.Context, userID string, _ time.Duration) (string, error) {
	repository.counter++
	nonce := fmt.Sprintf("nonce-%d", repository.counter)
	repository.nonces[userID] = nonce
	return nonce, nil
}

func (repository *fakeNonceRepository) Get(_ context.Context, userID string) (string, error) {
	if nonce, ok := repository.nonces[userID]; ok {
		return nonce, nil
	}
	return "", apperr.NotFound("Confirmation code is invalid or expired")
}

func (repository *fakeNonceRepository) Delete(_ context.Context, userID string) error {
	delete(repository.nonces, userID)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, isSuperuser bool, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt:%s:%s:%s:%t", userID, username, role, isSuperuser), nil
}

type fakeMailer struct {
	sent []string // message bodies, in order
}

func (mailer *fakeMailer) Send(_ context.Context, _, _, body string) error {
	mailer.sent = append(mailer.sent, body)
	return nil
}

// # Harness

type authFixture struct {
	service *Service
	users   *fakeUserRepository
	nonces  *fakeNonceRepository
	mailer  *fakeMailer
	issuer  *sec.CodeIssuer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepository()
	nonces := newFakeNonceRepository()
	sink := &fakeMailer{}
	issuer := sec.NewCodeIssuer("test-secret")

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewService(users, nonces, issuer, fakeTokenProvider{}, sink, quiet)
	return &authFixture{service: service, users: users, nonces: nonces, mailer: sink, issuer: issuer}
}

// codeFor recomputes the confirmation code currently valid for the username.
func (fixture *authFixture) codeFor(t *testing.T, username string) string {
	t.Helper()

	user, err := fixture.service.userRepository.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	nonce, err := fixture.nonces.Get(context.Background(), user.ID)
	require.NoError(t, err)

	return fixture.issuer.Derive(fixture.service.codeState(user, nonce))
}

// # Signup

func TestSignupCreatesUserWithDefaultRole(t *testing.T) {
	fixture := newAuthFixture(t)

	result, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "reader", result.Username)
	assert.Equal(t, "reader@example.com", result.Email)

	user, err := fixture.users.FindByUsername(context.Background(), "reader")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.IsSuperuser)
	assert.Len(t, fixture.mailer.sent, 1)
	assert.Contains(t, fixture.mailer.sent[0], fixture.codeFor(t, "reader"))
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	_, err = fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "other@example.com",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	_, err = fixture.service.Signup(context.Background(), SignupInput{
		Username: "someone-else", Email: "reader@example.com",
	})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestRepeatSignupInvalidatesPreviousCode(t *testing.T) {
	fixture := newAuthFixture(t)
	signup := SignupInput{Username: "reader", Email: "reader@example.com"}

	_, err := fixture.service.Signup(context.Background(), signup)
	require.NoError(t, err)
	firstCode := fixture.codeFor(t, "reader")

	_, err = fixture.service.Signup(context.Background(), signup)
	require.NoError(t, err)
	secondCode := fixture.codeFor(t, "reader")

	require.NotEqual(t, firstCode, secondCode)

	// The first code must no longer be exchangeable.
	_, err = fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: firstCode,
	})
	assert.Error(t, err)

	// The second one must work.
	token, err := fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: secondCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// # Token Exchange

func TestExchangeTokenHappyPath(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	token, err := fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: fixture.codeFor(t, "reader"),
	})

	require.NoError(t, err)
	assert.Contains(t, token, "reader")
	assert.Contains(t, token, "user")
}

func TestExchangeTokenIsSingleUse(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)
	code := fixture.codeFor(t, "reader")

	_, err = fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: code,
	})
	require.NoError(t, err)

	// Replaying the consumed code must fail.
	_, err = fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: code,
	})
	assert.Error(t, err)
}

func TestExchangeTokenUniformRejection(t *testing.T) {
	fixture := newAuthFixture(t)

	_, err := fixture.service.Signup(context.Background(), SignupInput{
		Username: "reader", Email: "reader@example.com",
	})
	require.NoError(t, err)

	// Unknown usernames and wrong codes must be indistinguishable to block
	// account enumeration.
	_, unknownUserErr := fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "ghost", ConfirmationCode: "anything",
	})
	_, wrongCodeErr := fixture.service.ExchangeToken(context.Background(), ExchangeInput{
		Username: "reader", ConfirmationCode: "definitely-wrong-code",
	})

	unknownApp := apperr.As(unknownUserErr)
	wrongApp := apperr.As(wrongCodeErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)

	assert.Equal(t, unknownApp.Code, wrongApp.Code)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
}
