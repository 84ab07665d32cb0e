package entity

import "errors"

// Domain errors
var (
	// Request validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrMissingQuestion  = errors.New("question is required")

	// Auth errors
	ErrUnauthorized = errors.New("invalid or missing API key")

	// Sync errors
	ErrJobNotFound = errors.New("sync job not found")

	// Vector store errors
	ErrEmptyPage = errors.New("page has no extractable content")
)
