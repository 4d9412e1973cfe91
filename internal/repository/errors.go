// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers such
// as handlers to distinguish between failure scenarios: ErrNotFound
// maps to 404, ErrForbidden to 403 and ErrConflict to 409. Availability
// lookups never surface these to visitors; the gate maps any lookup
// error to fail-open behaviour instead.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as a duplicate survey vote.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by user creation when the email address is
// already registered.
var ErrEmailExists = errors.New("email already exists")
