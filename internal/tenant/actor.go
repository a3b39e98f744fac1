package tenant

import (
	"github.com/google/uuid"
)

const (
	RoleAdmin       = "ADMIN"
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleFuncionario = "FUNCIONARIO"
)

// Actor identifica quem executa a operação. Todo serviço do core recebe o
// actor explicitamente; não existe contexto ambiente de tenant.
type Actor struct {
	ID       uuid.UUID
	TenantID uuid.UUID // para administradores, TenantID == ID
	Role     string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}

// ResolveTenant devolve a partição que o actor enxerga: administradores são
// donos da própria partição, funcionários herdam a do seu administrador.
func (a Actor) ResolveTenant() uuid.UUID {
	if a.IsAdmin() {
		return a.ID
	}
	return a.TenantID
}
