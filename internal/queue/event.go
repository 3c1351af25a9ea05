// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// booked.  It carries enough information for downstream consumers to log
// or notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationUID string `json:"reservation_uid"`
	UserUID        string `json:"user_uid"`
	UserPhone      string `json:"user_phone"`
	CourtUID       string `json:"court_uid"`
	CourtName      string `json:"court_name"`
	SurfaceName    string `json:"surface_name"`
	FromTime       string `json:"from_time"`
	ToTime         string `json:"to_time"`
	QuadGame       bool   `json:"quad_game"`
	TotalPrice     string `json:"total_price"`
	Currency       string `json:"currency"`
	CreatedAt      string `json:"created_at"`
}
