// Package common defines sentinel errors and small helpers shared by the
// storage, collection and service layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Collection-level errors.
	ErrNotReady = errors.New("collection not ready")
	ErrNotFound = errors.New("not found")

	// Validation errors returned by services before touching a store.
	ErrInvalidInput = errors.New("invalid input")

	// Storage envelope carries a version other than the current one.
	ErrVersionMismatch = errors.New("storage version mismatch")

	// Backup file could not be decrypted (wrong passphrase or corrupted data).
	ErrBadPassphrase = errors.New("bad passphrase or corrupted backup")
)
