// Package repository defines error types that are reused across the user
// repository. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific error strings themselves.
package repository

import "errors"

// ErrUsernameExists is returned when an insert or update collides with the
// unique constraint on users.username. Handlers should translate this into
// an HTTP 409 response with a username-specific message.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert or update collides with the
// unique constraint on users.email. Handlers should translate this into an
// HTTP 409 response with an email-specific message.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no user. Handlers should
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("user not found")
