package models

import "time"

// Roles assignable at registration. Role never changes afterwards.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the persisted account record. PasswordHash always holds a bcrypt
// hash; ResetOTP is non-nil only while a password reset is pending.
type User struct {
	ID            string
	Username      string
	Email         string
	PhoneNumber   string
	PasswordHash  string
	Role          string
	GroupID       *string
	ResetOTP      *string
	ResetOTPUntil *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin reports whether the account was created with the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
