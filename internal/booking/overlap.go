package booking

import (
	"time"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// Intersects reports whether the closed intervals [aFrom, aTo] and
// [bFrom, bTo] intersect.  Boundaries are inclusive: a reservation
// ending exactly when another begins counts as an intersection.  This
// mirrors the predicate the SQL store evaluates in FindOverlapping, so
// alternative store implementations can share one definition.
func Intersects(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}

// hasConflict decides whether the candidate conflicts with the
// reservations the store returned for its interval.  An empty result
// is no conflict.  A single result carrying the candidate's own UID is
// no conflict either: that is the update-in-place exemption, a
// reservation may always be re-saved against its own prior self.
// Anything else conflicts.
func hasConflict(candidate *model.Reservation, overlapping []*model.Reservation) bool {
	if len(overlapping) == 0 {
		return false
	}
	if len(overlapping) == 1 && overlapping[0].UID == candidate.UID {
		return false
	}
	return true
}
