package model

import (
	"time"

	"github.com/google/uuid"
)

// Reservation records a booking of one court by one user for the time
// interval [FromTime, ToTime).  The interval is validated so that
// FromTime is strictly before ToTime, and for a given court no two
// persisted reservations may overlap (a reservation re-saved under its
// own UID is not considered to conflict with itself).
//
// TotalPrice is computed by the booking service from the court
// surface's per-minute rate, never supplied by the caller, and always
// carries the currency of the court's surface.
//
// Fields:
//  UID        - identifier, assigned by the caller before persistence.
//  Court      - court being reserved (required).
//  User       - user holding the reservation (required).
//  FromTime   - start of the interval, timezone aware, stored in UTC.
//  ToTime     - end of the interval, strictly after FromTime.
//  CreatedAt  - set at construction time; only used for ordering.
//  IsQuadGame - doubles game flag; multiplies the price by 1.5.
//  TotalPrice - computed amount plus currency.
type Reservation struct {
	UID        uuid.UUID   `json:"uid"`          // reservation.uid
	Court      *Court      `json:"court"`        // reservation.court_uid, joined
	User       *User       `json:"user"`         // reservation.user_uid, joined
	FromTime   time.Time   `json:"from_time"`    // reservation.from_time
	ToTime     time.Time   `json:"to_time"`      // reservation.to_time
	CreatedAt  time.Time   `json:"created_at"`   // reservation.created_at
	IsQuadGame bool        `json:"is_quad_game"` // reservation.is_quad_game
	TotalPrice MoneyAmount `json:"total_price"`  // reservation.total_price_*
}
