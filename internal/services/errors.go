// internal/services/errors.go
package services

import "errors"

// Sentinel errors shared by all services. Handlers translate these into
// HTTP status codes with errors.Is.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateProduct = errors.New("product already registered for this model and size")
	ErrDuplicateEmail   = errors.New("email already in use")
	ErrUnauthorized     = errors.New("not allowed to modify this resource")
	ErrStateConflict    = errors.New("resource is not in a state that allows this transition")
	ErrInvalidInput     = errors.New("invalid input")
)
