package auth

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Identity is the caller resolved from the access token. It is passed
// explicitly into every service call that needs an actor.
type Identity struct {
	UserID     string
	EmployeeID *string
	Role       Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityFromClaims reads user_id, employee_id and role from verified token claims.
func IdentityFromClaims(claims map[string]interface{}) (Identity, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || !Role(role).IsValid() {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{UserID: userID, Role: Role(role)}
	if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
		id.EmployeeID = &employeeID
	}
	return id, nil
}
