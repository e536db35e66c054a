// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorPolicy(t *testing.T) {
	const ownContent = "owner-1"
	const othersContent = "owner-2"

	testCases := []struct {
		name          string
		actor         Actor
		wantAdmin     bool
		wantModerator bool
		canModifyOwn  bool
		canModifyAny  bool
	}{
		{
			name:          "plain user",
			actor:         Actor{ID: "owner-1", Role: RoleUser},
			wantAdmin:     false,
			wantModerator: false,
			canModifyOwn:  true,
			canModifyAny:  false,
		},
		{
			name:          "moderator",
			actor:         Actor{ID: "owner-1", Role: RoleModerator},
			wantAdmin:     false,
			wantModerator: true,
			canModifyOwn:  true,
			canModifyAny:  true,
		},
		{
			name:          "admin",
			actor:         Actor{ID: "owner-1", Role: RoleAdmin},
			wantAdmin:     true,
			wantModerator: true,
			canModifyOwn:  true,
			canModifyAny:  true,
		},
		{
			name:          "superuser with plain role",
			actor:         Actor{ID: "owner-1", Role: RoleUser, IsSuperuser: true},
			wantAdmin:     true,
			wantModerator: true,
			canModifyOwn:  true,
			canModifyAny:  true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.wantAdmin, testCase.actor.IsAdmin())
			assert.Equal(t, testCase.wantModerator, testCase.actor.IsModerator())
			assert.Equal(t, testCase.canModifyOwn, testCase.actor.CanModifyContent(ownContent))
			assert.Equal(t, testCase.canModifyAny, testCase.actor.CanModifyContent(othersContent))
		})
	}
}

func TestActorFromClaims(t *testing.T) {
	claims := &AuthClaims{
		UserID:      "u-1",
		Username:    "reader",
		Role:        "moderator",
		IsSuperuser: false,
	}

	actor := ActorFromClaims(claims)

	assert.Equal(t, "u-1", actor.ID)
	assert.Equal(t, "reader", actor.Username)
	assert.Equal(t, RoleModerator, actor.Role)
	assert.False(t, actor.IsSuperuser)
}
