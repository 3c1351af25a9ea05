package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// Store is the persistence collaborator consumed by the booking
// service.  The service never talks to storage directly; it asks the
// store to run the guarded part of a booking attempt (existence check,
// overlap query and the final write) under a lock keyed by the court,
// so that two concurrent attempts for the same court cannot interleave
// between the overlap check and the write.
type Store interface {
	// WithCourtLock runs fn while holding an exclusive lock for the
	// given court.  The SQL implementation locks the court row with
	// SELECT ... FOR UPDATE inside a transaction that also scopes all
	// StoreTx calls; fn returning an error rolls the transaction back.
	// Lock acquisition fails with the store's not-found error when the
	// court does not exist.
	WithCourtLock(ctx context.Context, courtUID uuid.UUID, fn func(tx StoreTx) error) error
}

// StoreTx is the view of the store available inside WithCourtLock.
// All reads observe, and the write joins, the same locked scope.
type StoreTx interface {
	// FindOverlapping returns every reservation at the court whose
	// interval intersects [from, to] under the inclusive-boundary rule:
	// intervals touching at an endpoint do intersect.
	FindOverlapping(ctx context.Context, courtUID uuid.UUID, from, to time.Time) ([]*model.Reservation, error)

	// ExistsByUID reports whether a reservation with the UID is persisted.
	ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error)

	// Create persists a new reservation row.
	Create(ctx context.Context, r *model.Reservation) error

	// Update rewrites the row identified by r.UID.
	Update(ctx context.Context, r *model.Reservation) error
}
