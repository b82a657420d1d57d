package services

import "errors"

var (
	// ErrInvalidInput means the caller supplied an empty destination URL.
	ErrInvalidInput = errors.New("destination url is required")
	// ErrCodeSpaceExhausted means code generation kept colliding past the
	// retry bound.
	ErrCodeSpaceExhausted = errors.New("could not mint a unique code")
)
