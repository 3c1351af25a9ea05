package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places every monetary amount is
// rounded to before it is persisted or returned to clients.
const MoneyScale = 2

// MoneyAmount is a value object combining a decimal amount with its
// ISO 4217 currency code.  Amounts are always kept at two decimal
// places; the currency is a three letter code such as "CZK" or "EUR".
//
// Fields:
//  Amount   - monetary value, scale 2.
//  Currency - ISO 4217 currency code.
type MoneyAmount struct {
	Amount   decimal.Decimal `json:"amount"`   // reservation.total_price_amount
	Currency string          `json:"currency"` // reservation.total_price_currency
}

// Equal reports whether two money amounts represent the same value in
// the same currency.
func (m MoneyAmount) Equal(other MoneyAmount) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}
