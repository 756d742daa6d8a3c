// Package rbac defines the fixed role and permission model. The mapping is
// static and process-wide: roles cannot gain or lose permissions at runtime.
package rbac

// Roles understood by the system.
const (
	RoleAdmin    = "Admin"
	RoleEngineer = "Engineer"
	RoleViewer   = "Viewer"
)

// Permissions granted by roles.
const (
	PermRead   = "read"
	PermWrite  = "write"
	PermDelete = "delete"
	PermAdmin  = "admin"
)

// roles maps each role to its permission set and a human description.
// Shown in the admin UI when assigning roles.
var roles = map[string]struct {
	permissions []string
	description string
}{
	RoleAdmin: {
		permissions: []string{PermRead, PermWrite, PermDelete, PermAdmin},
		description: "Full system access including user management",
	},
	RoleEngineer: {
		permissions: []string{PermRead, PermWrite},
		description: "Can view and modify resources, manage incidents",
	},
	RoleViewer: {
		permissions: []string{PermRead},
		description: "Read-only access to all features",
	},
}

// Valid reports whether role is one of the defined roles.
func Valid(role string) bool {
	_, ok := roles[role]
	return ok
}

// Roles returns the defined role names in a stable order.
func Roles() []string {
	return []string{RoleAdmin, RoleEngineer, RoleViewer}
}

// Describe returns the human description for a role, or "" for unknown roles.
func Describe(role string) string {
	return roles[role].description
}

// PermissionsFor returns a copy of the permission set for a role. Unknown
// roles get no permissions.
func PermissionsFor(role string) []string {
	r, ok := roles[role]
	if !ok {
		return nil
	}
	out := make([]string, len(r.permissions))
	copy(out, r.permissions)
	return out
}

// HasPermission reports whether the permission set contains perm. Pure
// function, no I/O.
func HasPermission(permissions []string, perm string) bool {
	for _, p := range permissions {
		if p == perm {
			return true
		}
	}
	return false
}
