package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Surface represents a court surface type (clay, grass, hard, ...).
// Every court references exactly one surface, and the surface carries
// the per-minute rate used when pricing reservations on that court.
//
// Fields:
//  UID      - identifier, assigned by the caller before persistence.
//  Name     - human readable surface name.
//  Price    - price per minute of play, decimal scale 2.
//  Currency - ISO 4217 code of the price.
type Surface struct {
	UID       uuid.UUID       `json:"uid"`      // surface.uid
	Name      string          `json:"name"`     // surface.name
	Price     decimal.Decimal `json:"price"`    // surface.price (per minute)
	Currency  string          `json:"currency"` // surface.currency
	CreatedAt time.Time       `json:"-"`        // surface.created_at
}
