// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseState() CodeState {
	return CodeState{
		UserID:      "u-1",
		Email:       "reader@example.com",
		Role:        "user",
		LastLoginAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Nonce:       "nonce-1",
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	issuer := NewCodeIssuer("test-secret")

	first := issuer.Derive(baseState())
	second := issuer.Derive(baseState())

	assert.Equal(t, first, second)
	assert.Len(t, first, CodeLength)
	assert.Regexp(t, "^[a-z2-7]+$", first, "codes are lowercase base32")
}

func TestVerifyAcceptsDerivedCode(t *testing.T) {
	issuer := NewCodeIssuer("test-secret")
	state := baseState()

	code := issuer.Derive(state)

	assert.True(t, issuer.Verify(state, code))
	assert.False(t, issuer.Verify(state, "wrong-code-wrong-code"))
}

func TestNonceRotationInvalidatesPriorCode(t *testing.T) {
	issuer := NewCodeIssuer("test-secret")

	firstState := baseState()
	firstCode := issuer.Derive(firstState)

	// A second signup rotates the nonce; the first code must stop validating.
	secondState := firstState
	secondState.Nonce = "nonce-2"
	secondCode := issuer.Derive(secondState)

	require.NotEqual(t, firstCode, secondCode)
	assert.False(t, issuer.Verify(secondState, firstCode))
	assert.True(t, issuer.Verify(secondState, secondCode))
}

func TestStateChangeInvalidatesCode(t *testing.T) {
	issuer := NewCodeIssuer("test-secret")
	original := baseState()
	code := issuer.Derive(original)

	testCases := []struct {
		name   string
		mutate func(state *CodeState)
	}{
		{"role change", func(state *CodeState) { state.Role = "moderator" }},
		{"email change", func(state *CodeState) { state.Email = "other@example.com" }},
		{"password change", func(state *CodeState) { state.PasswordHash = "new-hash" }},
		{"login bump", func(state *CodeState) { state.LastLoginAt = state.LastLoginAt.Add(time.Second) }},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			mutated := original
			testCase.mutate(&mutated)
			assert.False(t, issuer.Verify(mutated, code))
		})
	}
}

func TestDifferentSecretsProduceDifferentCodes(t *testing.T) {
	codeA := NewCodeIssuer("secret-a").Derive(baseState())
	codeB := NewCodeIssuer("secret-b").Derive(baseState())

	assert.NotEqual(t, codeA, codeB)
}
