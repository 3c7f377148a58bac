package errors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrMissingField         = errors.New("missing required field")
	ErrInvalidState         = errors.New("invalid workflow state")
	ErrMalformedImport      = errors.New("malformed import payload")
	ErrConfirmationRequired = errors.New("confirmation required")
)
