package auth

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
	RoleClient Role = "client"
)

// Actor is the authenticated caller, passed explicitly into every use case.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleWorker, RoleClient:
		return Role(s), true
	}
	return "", false
}
