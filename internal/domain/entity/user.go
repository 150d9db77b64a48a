package entity

import "time"

// Role values assigned at signup. Roles are immutable after creation and are
// never taken from client input.
const (
	RoleCustomer = "customer"
	RoleVendor   = "vendor"
	RoleAdmin    = "admin"
)

// User is the aggregate root for the credential store. Password holds a
// bcrypt hash, never plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SafeProjection is the client-facing view of a user with the password hash
// stripped.
type SafeProjection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) Safe() SafeProjection {
	return SafeProjection{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
