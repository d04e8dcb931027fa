package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist. For owner-scoped
	// recipe lookups it also covers rows owned by a different account.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when an account email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)
