// Package pgerr classifies PostgreSQL errors returned through lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	uniqueViolation pq.ErrorCode = "23505"
	checkViolation  pq.ErrorCode = "23514"
)

// IsUniqueViolation reports whether err is a unique or primary key violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsCheckViolation reports whether err violates a CHECK constraint.
func IsCheckViolation(err error) bool {
	return hasCode(err, checkViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code
	}
	return false
}
