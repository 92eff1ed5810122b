package repository

import (
	"errors"

	"github.com/lib/pq"
)

// integrityConstraintViolation is the SQLSTATE class for FK, CHECK, NOT NULL and UNIQUE failures.
const integrityConstraintViolation = pq.ErrorClass("23")

// IsConstraintViolation reports whether err was raised by PostgreSQL for an
// integrity constraint, as opposed to a connectivity or server failure.
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == integrityConstraintViolation
}

// ConstraintName returns the violated constraint name, if any.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
