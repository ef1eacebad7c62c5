package models

import "errors"

// Sentinel errors the database layer rewrites driver errors into. The
// HTTP layer maps them to status codes with errors.Is.
var (
	// ErrGeneral covers unspecified database failures. The underlying
	// error is logged, users only get this generic message.
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is wrapped with the resource name by the
	// query callback.
	ErrResourceNotFound = errors.New("there is no")

	ErrEmailRegistered = errors.New("this email is already registered")
)
