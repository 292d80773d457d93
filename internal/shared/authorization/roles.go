package authorization

type UserRole string

const (
	// RoleAdmin has unrestricted ticket-handling rights.
	RoleAdmin UserRole = "admin"
	// RoleCoordinator carries the same ticket-handling rights as admin.
	RoleCoordinator UserRole = "coordinator"
	// RoleAgent can be assigned tickets and is restricted to tickets it
	// owns or unclaimed ones.
	RoleAgent UserRole = "agent"
)

func (r UserRole) String() string {
	return string(r)
}

// IsElevated reports whether the role carries full ticket-handling rights.
func (r UserRole) IsElevated() bool {
	return r == RoleAdmin || r == RoleCoordinator
}

func (r UserRole) IsAgent() bool {
	return r == RoleAgent
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCoordinator || r == RoleAgent
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleAgent
}
