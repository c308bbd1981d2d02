package domain

// Role роль вызывающей стороны
type Role string

const (
	RoleClient        Role = "client"
	RoleProfessional  Role = "professional"
	RoleAdministrator Role = "administrator"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleProfessional, RoleAdministrator:
		return true
	}
	return false
}

// Principal аутентифицированный участник: клиент, специалист или администратор.
// Для администратора ID не используется.
type Principal struct {
	Role Role
	ID   int64
}

func (p Principal) IsClient() bool        { return p.Role == RoleClient }
func (p Principal) IsProfessional() bool  { return p.Role == RoleProfessional }
func (p Principal) IsAdministrator() bool { return p.Role == RoleAdministrator }
