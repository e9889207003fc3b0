package store

import "errors"

var (
	// ErrNotFound covers a missing record and a record owned by someone else;
	// adapters never reveal which.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a uniqueness violation (duplicate email, duplicate
	// inventory item).
	ErrConflict = errors.New("record already exists")

	// ErrUnavailable wraps storage-transport failures (connectivity, timeout).
	// The core does not retry these; callers decide.
	ErrUnavailable = errors.New("storage unavailable")
)
