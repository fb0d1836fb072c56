// Package apperror holds the error kinds shared by every domain.
// Domain sentinels wrap one of them so the HTTP layer can map any of them to a status.
package apperror

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
	ErrStorage  = errors.New("storage failure")
)
