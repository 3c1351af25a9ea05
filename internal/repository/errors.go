// Package repository implements raw SQL persistence for the tennis
// club entities.  Sentinel errors defined here are shared across the
// individual repositories so that handlers can distinguish failure
// scenarios with errors.Is: ErrNotFound translates to HTTP 404,
// ErrConflict and ErrPhoneExists to 409.
package repository

import "errors"

// ErrNotFound is returned when an entity referenced by UID does not
// exist (lookups, updates and deletes of absent rows).
var ErrNotFound = errors.New("entity not found")

// ErrConflict is returned when an insert collides with an existing row
// under the same UID.
var ErrConflict = errors.New("entity already exists")

// ErrPhoneExists is returned when creating a user whose phone number is
// already registered.  Phone numbers are unique across users.
var ErrPhoneExists = errors.New("phone number already exists")
