package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown generator kind or template.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDuplicateURI indicates two files resolved to the same document URI
	// while strict loading is enabled.
	ErrDuplicateURI = errors.New("duplicate document uri")

	// ErrDocsUnavailable indicates the document service is not configured.
	ErrDocsUnavailable = errors.New("document service unavailable")
)
