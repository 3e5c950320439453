package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrSessionNotFound indicates that session token was not found or already destroyed
	ErrSessionNotFound = errors.New("session not found")
)
