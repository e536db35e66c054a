// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// Day-long sessions match the low-risk, read-heavy nature of the platform.
	AccessTokenTTL = 24 * time.Hour

	// CodeNonceTTL is how long an issued confirmation code can be exchanged.
	// Users might not check email immediately, so it is deliberately generous.
	CodeNonceTTL = 24 * time.Hour

	// UsernameMaxLen mirrors the database column limit.
	UsernameMaxLen = 150

	// EmailMaxLen mirrors the database column limit.
	EmailMaxLen = 254

	// PasswordMinLen applies only when an administrator sets a password;
	// regular signup is passwordless.
	PasswordMinLen = 8

	// PasswordMaxLen keeps bcrypt input below its 72-byte truncation point.
	PasswordMaxLen = 64

	// codeMailSubject is the subject line of the confirmation code email.
	codeMailSubject = "Your Revuo confirmation code"
)
