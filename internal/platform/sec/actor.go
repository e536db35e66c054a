// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package sec

// Actor is the explicit identity parameter threaded through every service
// call that mutates data.
//
// # Why not a context value?
//
// Authorization decisions must be visible in function signatures. Services
// receive an Actor argument instead of pulling an ambient "current user" out
// of the request context, so every policy check is testable in isolation.
type Actor struct {
	ID          string
	Username    string
	Role        UserRole
	IsSuperuser bool
}

// # Authorization Policy

// IsAdmin reports whether the actor holds admin privileges.
// The superuser flag always implies admin.
func (a Actor) IsAdmin() bool {
	return a.IsSuperuser || a.Role == RoleAdmin
}

// IsModerator reports whether the actor may moderate community content.
func (a Actor) IsModerator() bool {
	return a.IsSuperuser || a.Role.AtLeast(RoleModerator)
}

// CanModifyContent evaluates the owner-or-moderator rule for reviews and
// comments: the author may always edit their own content, and moderators
// and admins may edit anyone's.
func (a Actor) CanModifyContent(ownerID string) bool {
	return a.ID == ownerID || a.IsModerator()
}

// ActorFromClaims reconstructs an [Actor] from verified JWT claims.
func ActorFromClaims(claims *AuthClaims) Actor {
	return Actor{
		ID:          claims.UserID,
		Username:    claims.Username,
		Role:        UserRole(claims.Role),
		IsSuperuser: claims.IsSuperuser,
	}
}
