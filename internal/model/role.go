package model

// Role is the closed set of portal roles. Anything outside the set is
// treated as a cliente when routing.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmpleado Role = "empleado"
	RoleCliente  Role = "cliente"
)

// Landing paths per role
const (
	PathAdmin    = "/admin"
	PathEmpleado = "/empleado"
	PathCliente  = "/cliente"
	PathHome     = "/"
	PathLogin    = "/login"
)

// ParseRole maps an arbitrary stored string onto the closed Role set.
// Unknown or empty values collapse to RoleCliente.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEmpleado:
		return RoleEmpleado
	default:
		return RoleCliente
	}
}

// LandingPath returns the single dashboard path a role lands on after
// sign-in, OAuth callback or session restore. Total over all inputs.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return PathAdmin
	case RoleEmpleado:
		return PathEmpleado
	default:
		return PathCliente
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmpleado, RoleCliente:
		return true
	}
	return false
}

// CanAccess reports whether the role may enter the dashboard identified
// by its landing path.
func (r Role) CanAccess(path string) bool {
	switch path {
	case PathAdmin:
		return r == RoleAdmin
	case PathEmpleado:
		return r == RoleAdmin || r == RoleEmpleado
	default:
		return true
	}
}
