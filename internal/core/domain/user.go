package domain

// Role is the capability a user record carries.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleStaff     Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolePassenger || r == RoleStaff
}

// User models an account in the credential store. Username is the only
// identity key.
type User struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Disabled       bool   `json:"disabled"`
	Role           Role   `json:"role"`
	HashedPassword string `json:"-"`
}

// Clone returns a copy so callers cannot mutate stored records.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

// SessionUser is the projection of a verified identity kept in a session.
type SessionUser struct {
	Email string `json:"email"`
}

// IdentityClaims are the claims an external identity provider vouches for.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
	Claims  map[string]any
}
