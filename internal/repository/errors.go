// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings themselves. Absence of a row
// is reported with database/sql's own sql.ErrNoRows.
package repository

import (
	"errors"
	"strings"
)

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint on the users table. Handlers translate this
// into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateReservation is returned when a reservation with the same
// (user, restaurant, date, time) tuple already exists. Handlers
// translate this into an HTTP 409 response.
var ErrDuplicateReservation = errors.New("reservation already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (server error 1062). The driver does not expose a typed error for it.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
