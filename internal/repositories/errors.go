package repositories

import "errors"

var (
	// ErrCodeTaken means the short code already exists in the store.
	ErrCodeTaken = errors.New("code already taken")
	// ErrLinkNotFound means no link row exists for the code.
	ErrLinkNotFound = errors.New("link not found")
)
