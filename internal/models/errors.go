package models

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionTooShort is returned for sessions under MinSessionSeconds
	ErrSessionTooShort = errors.New("study session must be not less than 36 seconds")
)
