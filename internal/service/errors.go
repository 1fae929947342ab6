package service

import "errors"

// Service-level error taxonomy. Controllers map each of these to a fixed
// HTTP status; anything else is an internal error (500).
var (
	// ErrEmailTaken signals a registration attempt with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials signals a failed login. It is deliberately the
	// same for an unknown email and a wrong password so a caller cannot
	// probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyTitle signals a create or update with a blank task title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrTaskNotFound signals that no task exists with the given id.
	ErrTaskNotFound = errors.New("task not found")
)
