// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package dberr maps low-level pgx errors onto [apperr.AppError] categories.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/apperr"
)

// SQLSTATE codes we classify.
const (
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeForeignKeyViolation = "23503"
)

// Wrap classifies a database error for the given resource.
//
// No rows becomes NotFound, a unique violation becomes Conflict, a check
// violation becomes InvalidInput, and anything else becomes Internal with the
// action recorded in the cause.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(err)
		case codeCheckViolation:
			return apperr.InvalidInput("Invalid " + resource + " data").WithCause(err)
		}
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
