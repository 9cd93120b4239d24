package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of session states the route gate matches on.
// Anonymous is never persisted; it is the state of a visitor with no
// valid session.
type Role string

const (
	RoleAnonymous Role = "ANONYMOUS"
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole maps a stored role string onto the enum. Only USER and ADMIN
// are storable; anything else is an error rather than a silent default.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return RoleAnonymous, fmt.Errorf("unknown role %q", s)
}

// Allows reports whether a session with role r may act as required.
// Admin implies user access; anonymous implies nothing.
func (r Role) Allows(required Role) bool {
	switch required {
	case RoleAnonymous:
		return true
	case RoleUser:
		return r == RoleUser || r == RoleAdmin
	case RoleAdmin:
		return r == RoleAdmin
	}
	return false
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	Name         string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
