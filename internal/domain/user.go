package domain

import "time"

// Role is the coarse authorization tier carried in tokens.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is an account that can hold a session. Accounts provisioned through
// the Shopify OAuth flow carry no password hash and cannot log in locally.
type User struct {
	ID           string
	ShopID       *string
	Email        string
	PasswordHash *string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
