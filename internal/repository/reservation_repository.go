package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// ReservationRepo provides the read and delete side of reservation
// persistence: lookups by UID and the paginated projections used by the
// listing endpoints.  Creation and update go through BookingStore
// instead, because those writes must happen under the court lock.
// All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

var reservationSortColumns = map[string]string{
	"fromtime":  "r.from_time",
	"totime":    "r.to_time",
	"createdat": "r.created_at",
}

const reservationSelect = `SELECT r.uid, r.from_time, r.to_time, r.created_at, r.is_quad_game,
       r.total_price_amount, r.total_price_currency,
       c.uid, c.name, c.created_at,
       s.uid, s.name, s.price, s.currency, s.created_at,
       u.uid, u.first_name, u.family_name, u.phone_number, u.roles, u.created_at
FROM reservation r
JOIN court c ON c.uid = r.court_uid
JOIN surface s ON s.uid = c.surface_uid
JOIN user_entity u ON u.uid = r.user_uid`

func scanReservation(scan func(dest ...any) error) (*model.Reservation, error) {
	var (
		res               model.Reservation
		c                 model.Court
		s                 model.Surface
		u                 model.User
		resUID, courtUID  string
		surfaceUID, usrID string
		roles             string
	)
	err := scan(&resUID, &res.FromTime, &res.ToTime, &res.CreatedAt, &res.IsQuadGame,
		&res.TotalPrice.Amount, &res.TotalPrice.Currency,
		&courtUID, &c.Name, &c.CreatedAt,
		&surfaceUID, &s.Name, &s.Price, &s.Currency, &s.CreatedAt,
		&usrID, &u.FirstName, &u.FamilyName, &u.PhoneNumber, &roles, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	res.UID = uuid.MustParse(resUID)
	c.UID = uuid.MustParse(courtUID)
	s.UID = uuid.MustParse(surfaceUID)
	u.UID = uuid.MustParse(usrID)
	u.Roles = model.SplitRoles(roles)
	c.Surface = &s
	res.Court = &c
	res.User = &u
	return &res, nil
}

// GetByUID fetches a reservation with its court, surface and user
// joined.  Returns ErrNotFound when no row matches.
func (r *ReservationRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.uid = ?`, uid.String())
	res, err := scanReservation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return res, err
}

// List returns a page over all reservations plus the total row count.
func (r *ReservationRepo) List(ctx context.Context, p Pageable) ([]*model.Reservation, int64, error) {
	q := reservationSelect + orderClause(p, reservationSortColumns, "r.created_at") + ` LIMIT ? OFFSET ?`
	return r.listPage(ctx, q, `SELECT COUNT(*) FROM reservation`, []any{p.Size, p.Offset()}, nil)
}

// ListByCourt returns the reservations at one court, paged, plus the
// count of all reservations at that court.
func (r *ReservationRepo) ListByCourt(ctx context.Context, courtUID uuid.UUID, p Pageable) ([]*model.Reservation, int64, error) {
	q := reservationSelect + ` WHERE r.court_uid = ?` +
		orderClause(p, reservationSortColumns, "r.created_at") + ` LIMIT ? OFFSET ?`
	countQ := `SELECT COUNT(*) FROM reservation WHERE court_uid = ?`
	return r.listPage(ctx, q,
		countQ,
		[]any{courtUID.String(), p.Size, p.Offset()},
		[]any{courtUID.String()})
}

// ListByPhoneNumber returns the reservations held by the user with the
// given phone number whose from time lies strictly after the lower
// bound.  The strict comparison is what makes "show only upcoming
// bookings" work: a reservation starting exactly at the bound is
// excluded.
func (r *ReservationRepo) ListByPhoneNumber(ctx context.Context, phone string, after time.Time, p Pageable) ([]*model.Reservation, int64, error) {
	q := reservationSelect + ` WHERE u.phone_number = ? AND r.from_time > ?` +
		orderClause(p, reservationSortColumns, "r.created_at") + ` LIMIT ? OFFSET ?`
	countQ := `SELECT COUNT(*) FROM reservation r
JOIN user_entity u ON u.uid = r.user_uid
WHERE u.phone_number = ? AND r.from_time > ?`
	return r.listPage(ctx, q,
		countQ,
		[]any{phone, after.UTC(), p.Size, p.Offset()},
		[]any{phone, after.UTC()})
}

func (r *ReservationRepo) listPage(ctx context.Context, query, countQuery string, args, countArgs []any) ([]*model.Reservation, int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations := make([]*model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// Delete removes a reservation.  Returns ErrNotFound when no row was
// deleted.
func (r *ReservationRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservation WHERE uid = ?`, uid.String())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ExistsByUID reports whether a reservation row with the UID exists.
func (r *ReservationRepo) ExistsByUID(ctx context.Context, uid uuid.UUID) (bool, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservation WHERE uid = ?`, uid.String()).Scan(&n)
	return n > 0, err
}
