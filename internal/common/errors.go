// Package common provides shared utilities and types used across the application.
package common

import "errors"

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Wizard errors.
	ErrEmptySelection  = errors.New("no products selected")
	ErrMissingRequired = errors.New("required field missing")
	ErrWrongPhase      = errors.New("operation not valid in current phase")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)
