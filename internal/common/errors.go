// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Application errors. Every failed engine operation wraps one of these so
// callers can branch with errors.Is; a failure never leaves partial state
// behind.
var (
	// ErrNotFound indicates an id or preset name that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEntry indicates a malformed or missing required field on submission.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrInvalidTransition indicates a reimbursement status edge that is not permitted.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidCategory indicates a category outside the configured set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidConfig indicates configuration that fails validation at load.
	ErrInvalidConfig = errors.New("invalid configuration")
)
