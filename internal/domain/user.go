package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserStatus tracks the role-upgrade request lifecycle. The Requested
// value is spelled with a capital R because clients send it that way.
type UserStatus string

const (
	UserStatusNone      UserStatus = "none"
	UserStatusRequested UserStatus = "Requested"
	UserStatusVerified  UserStatus = "verified"
)

// User represents an account within the platform, keyed by email.
// Records are created on first login and never deleted.
type User struct {
	Email    string
	Name     string
	Photo    string
	Role     UserRole
	Status   UserStatus
	JoinedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
