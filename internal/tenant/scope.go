package tenant

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

// Scope restringe qualquer query à partição do administrador. Toda leitura e
// escrita de entidade operacional passa por aqui.
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ScopeVia aplica o predicado de tenant através de um join, para tabelas cuja
// coluna tenant_id mora na entidade relacionada (ex.: registro_ponto →
// funcionario.tenant_id durante o backfill).
func ScopeVia(joinTable, fk string, tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		join := fmt.Sprintf("JOIN %s ON %s.id = %s", joinTable, joinTable, fk)
		return db.Joins(join).Where(fmt.Sprintf("%s.tenant_id = ?", joinTable), tenantID)
	}
}

// Owned é implementado por toda entidade operacional.
type Owned interface {
	OwnerTenant() uuid.UUID
}

// AssertOwned falha com OwnershipViolation quando a entidade pertence a outra
// partição. É a última barreira; os repositórios já filtram por tenant.
func AssertOwned(entity Owned, tenantID uuid.UUID) error {
	if entity.OwnerTenant() != tenantID {
		return apperror.ErrOwnership
	}
	return nil
}
