package entities

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
	RoleReception  Role = "reception"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTechnician, RoleReception:
		return true
	}
	return false
}

// Actor is the authenticated caller supplied by the identity provider.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// HasRole reports whether the actor holds any of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
