package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = errors.New("not logged in")
	ErrNotTracking      = errors.New("reading session is not being tracked")
	ErrLocked           = errors.New("finish reading the work to unlock this action")
)
