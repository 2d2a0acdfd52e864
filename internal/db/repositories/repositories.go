// Package repositories provides database access for all persistent entities.
// Repositories return (nil, nil) when a row does not exist so that handlers
// can distinguish "not found" from infrastructure failures.
package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// pq error code for unique_violation.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, such as inserting a duplicate email or project member.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return false
}
