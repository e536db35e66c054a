// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"strconv"
	"strings"
	"time"
)

// # Confirmation Codes

// CodeLength is the number of characters in a presentable confirmation code.
const CodeLength = 20

// codeEncoding is unpadded lowercase base32, chosen so codes survive being
// typed from an email on a phone keyboard.
var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// CodeState is the mutable identity snapshot a confirmation code is derived
// from. Any change to one of these fields invalidates every previously
// issued code for the user.
//
// # Single-use semantics
//
// Codes are never stored. The Nonce is rotated on every issuance (so a new
// signup invalidates the previous code) and LastLoginAt is bumped when a
// code is successfully exchanged (so a consumed code can never validate
// again). Role and password changes invalidate codes as a natural side
// effect of the derivation.
type CodeState struct {
	UserID       string
	Email        string
	Role         string
	PasswordHash string
	LastLoginAt  time.Time
	Nonce        string
}

// canonical renders the state as a stable byte string for hashing.
func (s CodeState) canonical() []byte {
	parts := []string{
		s.UserID,
		s.Email,
		s.Role,
		s.PasswordHash,
		strconv.FormatInt(s.LastLoginAt.UTC().UnixNano(), 10),
		s.Nonce,
	}
	return []byte(strings.Join(parts, "\x00"))
}

// CodeIssuer derives and validates confirmation codes from user state.
//
// It is a pure function of (secret, state): safe for unbounded concurrent
// use, and requires no storage beyond the issuance nonce held by the caller.
type CodeIssuer struct {
	secret []byte
}

// NewCodeIssuer constructs a [CodeIssuer] keyed with the server secret.
func NewCodeIssuer(secret string) *CodeIssuer {
	return &CodeIssuer{secret: []byte(secret)}
}

// Derive computes the confirmation code for the given identity state.
func (issuer *CodeIssuer) Derive(state CodeState) string {
	mac := hmac.New(sha256.New, issuer.secret)
	mac.Write(state.canonical())

	encoded := strings.ToLower(codeEncoding.EncodeToString(mac.Sum(nil)))
	return encoded[:CodeLength]
}

// Verify recomputes the expected code from current state and compares it to
// the presented one in constant time.
//
// A mismatch is an ordinary outcome, not an error: the caller surfaces it as
// an authentication failure.
func (issuer *CodeIssuer) Verify(state CodeState, code string) bool {
	expected := issuer.Derive(state)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1
}
