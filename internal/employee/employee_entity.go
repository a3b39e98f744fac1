package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Funcionario carrega o vínculo com o horário de trabalho e o salário mensal
// de onde o valor-hora é derivado. Nunca é apagado fisicamente enquanto tiver
// histórico; desativação é o fim de vida normal.
type Funcionario struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID          uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index:idx_funcionario_tenant_codigo,unique"`
	Codigo            string          `gorm:"column:codigo;type:varchar(20);not null;index:idx_funcionario_tenant_codigo,unique"`
	Nome              string          `gorm:"column:nome;type:varchar(150);not null"`
	Salario           decimal.Decimal `gorm:"column:salario;type:numeric(12,2);not null"`
	HorarioTrabalhoID *uuid.UUID      `gorm:"column:horario_trabalho_id;type:uuid;index"`
	Ativo             bool            `gorm:"column:ativo;not null;default:true;index"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Funcionario) TableName() string {
	return "funcionario"
}

func (f Funcionario) OwnerTenant() uuid.UUID { return f.TenantID }

// FotoFacial é uma foto de referência do funcionário usada pelo provedor de
// embeddings. Um funcionário pode ter várias; inativas são ignoradas no cache.
type FotoFacial struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	FuncionarioID uuid.UUID `gorm:"column:funcionario_id;type:uuid;not null;index"`
	Conteudo      []byte    `gorm:"column:conteudo;type:bytea;not null"`
	Descricao     string    `gorm:"column:descricao;type:varchar(100)"`
	Ativa         bool      `gorm:"column:ativa;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (FotoFacial) TableName() string {
	return "foto_facial_funcionario"
}

func (f FotoFacial) OwnerTenant() uuid.UUID { return f.TenantID }
