package service

import "github.com/pkg/errors"

// Sentinel errors returned by the services. Handlers surface err.Error()
// verbatim in the response envelope, so the texts are user-facing.
var (
	ErrMissingFields      = errors.New("username and password are required")
	ErrUsernameRequired   = errors.New("username is required")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")

	// ErrNotFound deliberately covers both a nonexistent mailbox and one
	// owned by somebody else, so callers cannot probe for existence.
	ErrNotFound = errors.New("email account not found or access denied")

	ErrProviderUnavailable = errors.New("temporary mail service is unavailable")
)
