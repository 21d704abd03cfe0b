package domain

// Role enumerates the caller classes resolved from the directory.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleEmployee   Role = "Employee"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// Identity is the resolved caller. Unit is empty for admins; SupervisorEmail is set for employees only.
type Identity struct {
	Email           string
	DisplayName     string
	Role            Role
	Unit            string
	SupervisorEmail string
}
