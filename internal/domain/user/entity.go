package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Full access, can manage users and catalogs
	RoleStaff Role = "staff" // Can run settlements and view catalogs
)

type User struct {
	ID              string
	Email           string
	Name            string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user can manage catalogs and other users
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
