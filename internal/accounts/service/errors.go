package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials merges "no such account" and "wrong password" so
	// login failures never reveal which usernames exist.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidToken merges "no such session" and "expired session".
	ErrInvalidToken = errors.New("invalid_token")

	// ErrForbidden covers authenticated but insufficiently privileged
	// actors and business-rule violations. Missing cross-account targets
	// also surface as ErrForbidden so the operation cannot be used to
	// enumerate usernames or emails.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict reports a uniqueness violation (username, email, work
	// reference).
	ErrConflict = errors.New("conflict")

	// ErrNotFound reports an absent target where hiding existence is not a
	// security concern (worksheet updates).
	ErrNotFound = errors.New("not_found")
)

// ValidationError reports structurally invalid input. It is always produced
// before any store mutation, and accumulates every problem found so the
// caller can fix a request in one round trip.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Problems, "; ")
}

func invalid(problems ...string) error {
	return &ValidationError{Problems: problems}
}
