package identity

import "time"

// Role classifies a dashboard identity.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleClient Role = "client"
	// RoleNone means the identity matched none of the profile tables.
	RoleNone Role = ""
)

// Valid reports whether the role is one of the known classifications.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleClient:
		return true
	}
	return false
}

// Identity is an authenticated principal managed by the identity provider.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Principal is a resolved identity attached to a request.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
