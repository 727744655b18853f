package models

import "errors"

// Domain errors shared across service and handler layers.
var (
	ErrUserNotFound    = errors.New("no user with this username")
	ErrAmbiguousUser   = errors.New("more than one user with this username")
	ErrInvalidPassword = errors.New("no user with this password")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTitleNotFound   = errors.New("no title with this id")
)
