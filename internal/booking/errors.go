// Package booking implements the reservation booking core: interval
// validation, overlap detection against existing reservations at a
// court, deterministic price calculation, and the orchestration that
// sequences them in front of the persistence layer.
package booking

import "errors"

// Sentinel errors raised by the booking service.  Handlers compare with
// errors.Is and translate them into HTTP status codes: missing values
// and invalid ranges map to 400, conflicts to 409, not-found to 404.
var (
	// ErrMissingReservation is returned when a nil candidate is passed
	// to Create or Update.
	ErrMissingReservation = errors.New("reservation must not be null")

	// ErrMissingUID is returned when the candidate has no identifier.
	// Identifiers are assigned by the caller before persistence, so an
	// empty UID is always a caller bug.
	ErrMissingUID = errors.New("reservation is missing its UID")

	// ErrMissingCourt is returned when the candidate carries no court
	// reference, or a court without its surface loaded.  The surface is
	// needed for pricing, so both must be present.
	ErrMissingCourt = errors.New("reservation is missing its court")

	// ErrInvalidTimeRange is returned when from time is not strictly
	// before to time.  Equal boundaries are invalid.
	ErrInvalidTimeRange = errors.New("From time must be before to time!")

	// ErrTimeConflict is returned when the candidate interval overlaps
	// an existing reservation at the same court.
	ErrTimeConflict = errors.New("There is already existing reservation for the specified time frame!")

	// ErrAlreadyExists is returned by Create when a reservation with
	// the candidate's UID is already persisted.
	ErrAlreadyExists = errors.New("reservation with this UID already exists")

	// ErrNotFound is returned by Update when no reservation with the
	// candidate's UID is persisted.
	ErrNotFound = errors.New("reservation with this UID doesn't exist")
)
