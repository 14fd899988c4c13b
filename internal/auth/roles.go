package auth

// Role enumerates API access levels.
type Role string

const (
	// RoleAdmin may ingest records and force snapshot refreshes.
	RoleAdmin Role = "ADMIN"
	// RoleAnalyst may read every analytics surface.
	RoleAnalyst Role = "ANALYST"
)

// ParseRole resolves a role value, reporting whether it is known.
func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleAdmin, RoleAnalyst:
		return Role(v), true
	}
	return "", false
}

// Allows reports whether the held role grants the required one. Admin
// subsumes analyst.
func (r Role) Allows(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}
