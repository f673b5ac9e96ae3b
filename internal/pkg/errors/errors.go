package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an authenticated caller acting on something it does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyExists marks uniqueness violations (grid names, column positions).
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnsupported marks combinations the engine cannot serve, e.g. an app-group
	// column over a subject kind other than applications or change initiatives.
	ErrUnsupported = errors.New("unsupported operation")
)
