package user

type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleDriver, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// SelfRegistrable reports whether an account with this role may be created
// through public sign-up.
func (r Role) SelfRegistrable() bool {
	return r == RoleClient || r == RoleDriver
}
