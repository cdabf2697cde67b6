// Copyright (c) 2026 Inkwell. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell-dev/inkwell/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows        -> 404 NOT_FOUND
//   - SQLSTATE 23505       -> 409 CONFLICT (unique violation, e.g. duplicate username or slug)
//   - SQLSTATE 23503       -> 400 VALIDATION_ERROR (broken foreign key, e.g. comment on a deleted post)
//   - anything else        -> 500 INTERNAL_ERROR (cause retained for logging)
func Wrap(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if conflictMessage == "" {
				conflictMessage = "Resource already exists"
			}
			return apperr.Conflict(conflictMessage)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	return apperr.Internal(err)
}
