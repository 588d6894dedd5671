package store

import "errors"

var (
	// ErrDuplicateAuthID is returned when an insert hits the unique index on
	// users.auth_id. The index is the authority for uniqueness; any
	// pre-insert lookup is only a fast path.
	ErrDuplicateAuthID = errors.New("auth id already exists")

	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")
)
