// Package account provides credential checks and account creation.
package account

import "errors"

// Sentinel errors for account use case operations.
var (
	// ErrInvalidCredentials is returned for an unknown user id or a wrong password.
	ErrInvalidCredentials = errors.New("invalid user id or password")

	// ErrUserIDTaken is returned when registering a user id that already exists.
	ErrUserIDTaken = errors.New("user id already taken")
)
