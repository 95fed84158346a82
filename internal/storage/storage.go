// Package storage persists users and notes on the local filesystem:
// a single CSV table for credentials and one directory of JSON files
// per user for notes. There is no cross-process locking; the process
// owning the data directory is the only writer.
package storage

import "errors"

var (
	// ErrNotFound is returned when a user or note does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
)
