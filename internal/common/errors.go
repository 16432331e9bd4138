// Package common defines sentinel errors shared by the storage backends and
// the stored-user coordinator. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors. Backends return ErrorNotFound when a key is
	// absent so the coordinator can tell absence apart from I/O failures.
	ErrorNotFound = errors.New("not found")

	// Validation errors.
	ErrorInvalidKey = errors.New("invalid key")
)
