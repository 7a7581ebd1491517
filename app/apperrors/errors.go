package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

// ValidationError reports a business-rule violation in the request payload
// (bad ranges, missing fields). Mapped to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports a missing entity id. Mapped to 404.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// UnauthorizedError reports a missing or invalid caller identity. Mapped to 401.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ForbiddenError reports insufficient privilege for the operation. Mapped to 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation, e.g. a duplicate salary for
// the same employee and month. Mapped to 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// LockedError reports a mutation attempted on a period-locked financial
// record. Distinct from ConflictError. Mapped to 423.
type LockedError struct {
	Entity string
}

func (e *LockedError) Error() string { return e.Entity + " is locked for the accounting period" }

// ImmutableRecordError reports an attempted mutation of an append-only
// record. Never recoverable, regardless of caller privilege.
type ImmutableRecordError struct {
	Entity string
}

func (e *ImmutableRecordError) Error() string { return e.Entity + " records are immutable" }

// StatusCode returns the HTTP status for an error from the ledger taxonomy,
// falling back to 500 for anything unrecognised.
func StatusCode(err error) int {
	var (
		ve  *ValidationError
		nfe *NotFoundError
		ue  *UnauthorizedError
		fe  *ForbiddenError
		ce  *ConflictError
		le  *LockedError
		ire *ImmutableRecordError
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &nfe):
		return fiber.StatusNotFound
	case errors.As(err, &ue):
		return fiber.StatusUnauthorized
	case errors.As(err, &fe):
		return fiber.StatusForbidden
	case errors.As(err, &ce):
		return fiber.StatusConflict
	case errors.As(err, &le):
		return fiber.StatusLocked
	case errors.As(err, &ire):
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
