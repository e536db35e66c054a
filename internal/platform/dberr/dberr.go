// Copyright (c) 2026 Revuo. All rights reserved.
// Author: dev@revuo.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/revuo-app/revuo/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violation mapping via SQLSTATE
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.ValidationError(
				fmt.Sprintf("Duplicate value violates a uniqueness rule (%s)", action))
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(
				fmt.Sprintf("Referenced resource does not exist (%s)", action))
		case pgerrcode.CheckViolation:
			return apperr.ValidationError(
				fmt.Sprintf("Value violates a data constraint (%s)", action))
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a Postgres 23505 unique violation.
// Stores use it when a duplicate needs a domain-specific message instead of
// the generic one produced by [Wrap].
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

// ConstraintName returns the violated constraint's name, or "" if err is not
// a Postgres constraint error.
func ConstraintName(err error) string {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		return pgError.ConstraintName
	}
	return ""
}
