package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// Service orchestrates a booking attempt: validate the candidate,
// detect conflicts at its court, compute the total price and persist.
// The steps run strictly in that order; in particular no price is ever
// computed and no write ever issued for a candidate that fails
// validation or conflicts, so a rejected attempt leaves storage
// untouched.
//
// The acting user is an explicit field on the candidate, set by the
// caller; the service never consults any ambient request context for
// identity.
type Service struct {
	store Store
}

// NewService returns a booking service backed by the given store.
func NewService(store Store) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{store: store}
}

// Create books a new reservation.  It fails with ErrAlreadyExists when
// the candidate's UID is already persisted, or ErrTimeConflict when the
// interval overlaps an existing reservation at the court.
func (s *Service) Create(ctx context.Context, candidate *model.Reservation) (*model.Reservation, error) {
	return s.save(ctx, candidate, false)
}

// Update re-books an existing reservation under its own UID.  The
// candidate is exempt from conflicting with its own persisted interval,
// so an unchanged time range always re-saves cleanly.
func (s *Service) Update(ctx context.Context, candidate *model.Reservation) (*model.Reservation, error) {
	return s.save(ctx, candidate, true)
}

func (s *Service) save(ctx context.Context, candidate *model.Reservation, update bool) (*model.Reservation, error) {
	if candidate == nil {
		return nil, ErrMissingReservation
	}
	if candidate.UID == uuid.Nil {
		return nil, ErrMissingUID
	}
	if candidate.Court == nil || candidate.Court.Surface == nil {
		return nil, ErrMissingCourt
	}
	if !candidate.FromTime.Before(candidate.ToTime) {
		return nil, ErrInvalidTimeRange
	}

	// Existence check, overlap check and the write all happen under one
	// lock keyed by the court, so concurrent attempts for overlapping
	// intervals serialize and exactly one of them wins.
	err := s.store.WithCourtLock(ctx, candidate.Court.UID, func(tx StoreTx) error {
		exists, err := tx.ExistsByUID(ctx, candidate.UID)
		if err != nil {
			return err
		}
		if !update && exists {
			return ErrAlreadyExists
		}
		if update && !exists {
			return ErrNotFound
		}

		overlapping, err := tx.FindOverlapping(ctx, candidate.Court.UID, candidate.FromTime, candidate.ToTime)
		if err != nil {
			return err
		}
		if hasConflict(candidate, overlapping) {
			return ErrTimeConflict
		}

		surface := candidate.Court.Surface
		candidate.TotalPrice = Price(surface.Price, surface.Currency,
			candidate.FromTime, candidate.ToTime, candidate.IsQuadGame)

		if update {
			return tx.Update(ctx, candidate)
		}
		return tx.Create(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	return candidate, nil
}
