package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role names stored in the user_entity.roles column and carried in JWT
// claims.  ADMIN implies access to management endpoints; USER is the
// default role assigned on registration.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an application user.  Users are identified to the
// outside world by their phone number, which is unique across all
// users.  The booking core only ever reads the UID and PhoneNumber.
//
// Fields:
//  UID         - identifier, assigned by the caller before persistence.
//  FirstName   - given name.
//  FamilyName  - family name.
//  PhoneNumber - unique phone number used to log in.
//  Password    - bcrypt hash of the password (never serialized).
//  Roles       - set of role names (USER, ADMIN).
type User struct {
	UID         uuid.UUID `json:"uid"`          // user_entity.uid
	FirstName   string    `json:"first_name"`   // user_entity.first_name
	FamilyName  string    `json:"family_name"`  // user_entity.family_name
	PhoneNumber string    `json:"phone_number"` // user_entity.phone_number
	Password    string    `json:"-"`            // user_entity.password (bcrypt hash)
	Roles       []string  `json:"roles"`        // user_entity.roles (comma separated in DB)
	CreatedAt   time.Time `json:"-"`            // user_entity.created_at
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// JoinRoles flattens a role set into the comma separated form stored in
// the database column.
func JoinRoles(roles []string) string { return strings.Join(roles, ",") }

// SplitRoles parses the comma separated column form back into a role
// set, dropping empty entries.
func SplitRoles(s string) []string {
	parts := strings.Split(s, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}
