// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between failure scenarios: ErrEmailExists maps
// to a 409 Conflict, ErrNotFound to a 404.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint on the users table.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")
