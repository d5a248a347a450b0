package model

// Role is the closed set of portal roles
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleDoctor        Role = "doctor"
	RoleNurse         Role = "nurse"
	RolePatient       Role = "patient"
	RoleReceptionist  Role = "receptionist"
	RoleLabTechnician Role = "lab_technician"

	// RoleEmployee is kept for records created by older clients. It has no workspace.
	RoleEmployee Role = "employee"
)

// IsValid reports whether r is one of the known roles, legacy variant included
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RolePatient, RoleReceptionist, RoleLabTechnician, RoleEmployee:
		return true
	default:
		return false
	}
}

// HasWorkspace reports whether the role owns a dedicated workspace route
func (r Role) HasWorkspace() bool {
	return r.IsValid() && r != RoleEmployee
}

func (r Role) String() string {
	return string(r)
}

// AllRoles returns every known role, legacy variant last
func AllRoles() []Role {
	return append(WorkspaceRoles(), RoleEmployee)
}

// WorkspaceRoles returns the roles that have a dedicated workspace
func WorkspaceRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleDoctor,
		RoleNurse,
		RolePatient,
		RoleReceptionist,
		RoleLabTechnician,
	}
}

// ParseRole safely parses a string into a Role
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
