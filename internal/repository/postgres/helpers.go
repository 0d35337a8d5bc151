package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE for a unique constraint conflict. Both
// ledger tables rely on it as the concurrency-safe idempotency gate: a
// conflicting insert is reported as ErrAlreadyExists and callers treat it
// as a successful no-op.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
