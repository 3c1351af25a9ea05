package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/booking"
	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// BookingStore is the SQL implementation of the booking core's
// persistence collaborator.  The overlap query and the reservation
// write for one booking attempt are two separate statements, so to
// keep concurrent attempts from both passing the check before either
// write lands, the whole guarded section runs inside a transaction
// that first locks the court row with SELECT ... FOR UPDATE.  Booking
// attempts for the same court thereby serialize; attempts for
// different courts proceed independently.
type BookingStore struct {
	db *sql.DB
}

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore { return &BookingStore{db: db} }

// WithCourtLock implements booking.Store.  It fails with ErrNotFound
// when the court row does not exist, since then there is nothing to
// lock and the booking cannot reference a valid court anyway.
func (s *BookingStore) WithCourtLock(ctx context.Context, courtUID uuid.UUID, fn func(tx booking.StoreTx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT uid FROM court WHERE uid = ? FOR UPDATE`, courtUID.String()).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := fn(&bookingTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// bookingTx scopes the booking.StoreTx operations to one transaction.
type bookingTx struct {
	tx *sql.Tx
}

// FindOverlapping returns the reservations at the court whose interval
// intersects [from, to] with inclusive boundaries.  The three-clause
// predicate covers: from falling inside an existing interval, to
// falling inside an existing interval, and the candidate fully
// containing an existing interval.  Only the columns the conflict
// decision needs are loaded; court and user come back as UID-only
// references.
func (t *bookingTx) FindOverlapping(ctx context.Context, courtUID uuid.UUID, from, to time.Time) ([]*model.Reservation, error) {
	const q = `SELECT uid, court_uid, user_uid, from_time, to_time, is_quad_game
FROM reservation
WHERE court_uid = ?
  AND ((? >= from_time AND ? <= to_time) OR
       (? >= from_time AND ? <= to_time) OR
       (? <= from_time AND ? >= to_time))`
	rows, err := t.tx.QueryContext(ctx, q, courtUID.String(),
		from.UTC(), from.UTC(), to.UTC(), to.UTC(), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)
	for rows.Next() {
		var (
			res          model.Reservation
			rawUID, cUID string
			uUID         string
		)
		if err := rows.Scan(&rawUID, &cUID, &uUID, &res.FromTime, &res.ToTime, &res.IsQuadGame); err != nil {
			return nil, err
		}
		res.UID = uuid.MustParse(rawUID)
		res.Court = &model.Court{UID: uuid.MustParse(cUID)}
		res.User = &model.User{UID: uuid.MustParse(uUID)}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ExistsByUID reports whether a reservation row with the UID exists
// within the locked transaction.
func (t *bookingTx) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	var n int64
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservation WHERE uid = ?`, uid.String()).Scan(&n)
	return n > 0, err
}

// Create inserts the reservation row.  A vanished court or user
// surfaces as ErrNotFound through the foreign key check.
func (t *bookingTx) Create(ctx context.Context, r *model.Reservation) error {
	const q = `INSERT INTO reservation
(uid, court_uid, user_uid, from_time, to_time, created_at, is_quad_game, total_price_amount, total_price_currency)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q,
		r.UID.String(), r.Court.UID.String(), r.User.UID.String(),
		r.FromTime.UTC(), r.ToTime.UTC(), r.CreatedAt.UTC(),
		r.IsQuadGame, r.TotalPrice.Amount, r.TotalPrice.Currency)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		if isMissingReference(err) {
			return ErrNotFound
		}
	}
	return err
}

// Update rewrites the reservation row identified by r.UID.  Existence
// is verified by the caller under the same lock, so the affected row
// count is not consulted; MySQL reports zero rows for a no-change
// update and that must not look like a missing row.
func (t *bookingTx) Update(ctx context.Context, r *model.Reservation) error {
	const q = `UPDATE reservation
SET court_uid = ?, user_uid = ?, from_time = ?, to_time = ?, is_quad_game = ?,
    total_price_amount = ?, total_price_currency = ?
WHERE uid = ?`
	_, err := t.tx.ExecContext(ctx, q,
		r.Court.UID.String(), r.User.UID.String(),
		r.FromTime.UTC(), r.ToTime.UTC(), r.IsQuadGame,
		r.TotalPrice.Amount, r.TotalPrice.Currency, r.UID.String())
	if err != nil && isMissingReference(err) {
		return ErrNotFound
	}
	return err
}
