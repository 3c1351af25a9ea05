package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

// QuadGameMultiplier is applied to the base price when the reservation
// is flagged as a doubles (quad) game.
var QuadGameMultiplier = decimal.RequireFromString("1.5")

// Price computes the total for a reservation of [from, to) on a surface
// charging ratePerMinute.  The duration counts whole minutes only,
// truncating toward zero; the raw product is rounded half-up to two
// decimal places.  The result carries the surface's currency.  Pure
// function, no failure modes: a negative duration is prevented upstream
// by the time-range validation.
func Price(ratePerMinute decimal.Decimal, currency string, from, to time.Time, quadGame bool) model.MoneyAmount {
	minutes := int64(to.Sub(from) / time.Minute)
	amount := ratePerMinute.Mul(decimal.NewFromInt(minutes))
	if quadGame {
		amount = amount.Mul(QuadGameMultiplier)
	}
	// decimal.Round rounds half away from zero, which is half-up for
	// the non-negative amounts produced here.
	return model.MoneyAmount{
		Amount:   amount.Round(model.MoneyScale),
		Currency: currency,
	}
}
