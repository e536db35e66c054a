// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revuo-app/revuo/internal/platform/sec"
)

// fakeVerifier maps token strings to canned claims.
type fakeVerifier struct {
	claims map[string]*sec.AuthClaims
}

func (verifier *fakeVerifier) VerifyToken(tokenStr string) (*sec.AuthClaims, error) {
	if claims, ok := verifier.claims[tokenStr]; ok {
		return claims, nil
	}
	return nil, errors.New("unknown token")
}

func newTestVerifier() *fakeVerifier {
	return &fakeVerifier{claims: map[string]*sec.AuthClaims{
		"user-token":      {UserID: "u-1", Username: "reader", Role: "user"},
		"moderator-token": {UserID: "u-2", Username: "mod", Role: "moderator"},
		"admin-token":     {UserID: "u-3", Username: "boss", Role: "admin"},
		"super-token":     {UserID: "u-4", Username: "root", Role: "user", IsSuperuser: true},
	}}
}

// protect wires Authenticate plus the given guard around a trivial handler.
func protect(guard func(http.Handler) http.Handler) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return Authenticate(newTestVerifier())(guard(final))
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name       string
		token      string
		required   sec.UserRole
		wantStatus int
	}{
		{"anonymous is rejected", "", sec.RoleUser, http.StatusUnauthorized},
		{"unknown token is rejected", "bogus", sec.RoleUser, http.StatusUnauthorized},
		{"user passes user gate", "user-token", sec.RoleUser, http.StatusOK},
		{"user blocked from admin gate", "user-token", sec.RoleAdmin, http.StatusForbidden},
		{"moderator blocked from admin gate", "moderator-token", sec.RoleAdmin, http.StatusForbidden},
		{"moderator passes moderator gate", "moderator-token", sec.RoleModerator, http.StatusOK},
		{"admin passes admin gate", "admin-token", sec.RoleAdmin, http.StatusOK},
		{"superuser passes admin gate despite user role", "super-token", sec.RoleAdmin, http.StatusOK},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := protect(RequireRole(testCase.required))

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if testCase.token != "" {
				request.Header.Set("Authorization", "Bearer "+testCase.token)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := protect(func(next http.Handler) http.Handler { return RequireAuth(next) })

	t.Run("anonymous gets 401", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request.Header.Set("Authorization", "Bearer user-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	handler := protect(func(next http.Handler) http.Handler { return RequireAuth(next) })

	request := httptest.NewRequest(http.MethodGet, "/me", nil)
	request.Header.Set("Authorization", "Token abc")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
