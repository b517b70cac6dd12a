package domain

// Role is the capability tier of a principal.
type Role string

const (
	RoleUser      Role = "user"
	RoleMember    Role = "member"
	RoleSecretary Role = "secretary"
	RoleConvenor  Role = "convenor"
)

// Roles lists every valid role, lowest capability first.
var Roles = []Role{RoleUser, RoleMember, RoleSecretary, RoleConvenor}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleMember, RoleSecretary, RoleConvenor:
		return true
	}
	return false
}

// Principal is the verified identity behind a request. It is rebuilt from the
// bearer credential on every request and never stored.
type Principal struct {
	ID       string
	Role     Role
	IsActive bool
}
