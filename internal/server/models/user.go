// Package models contains the persistent entities of the discussion board.
package models

import "time"

// Account roles. Admin is a flat flag, not a hierarchy.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Accounts start inactive and become usable
// after the e-mailed activation code is confirmed.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	Role           string
	Activated      bool
	ActivationCode string
	RecoverToken   string
	CreatedAt      time.Time
}

// IsAdmin reports whether the account carries the admin flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
