package model

import (
	"time"

	"github.com/google/uuid"
)

// Court represents a playable tennis court.  A court always belongs to
// exactly one surface; the surface reference is required and read-only
// from the booking core's point of view.
//
// Fields:
//  UID     - identifier, assigned by the caller before persistence.
//  Name    - court name.
//  Surface - the surface the court is built on, loaded by join.
type Court struct {
	UID       uuid.UUID `json:"uid"`     // court.uid
	Name      string    `json:"name"`    // court.name
	Surface   *Surface  `json:"surface"` // court.surface_uid, joined
	CreatedAt time.Time `json:"-"`       // court.created_at
}
