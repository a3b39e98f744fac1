package worksite

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPlanejada   = "planejada"
	StatusEmAndamento = "em_andamento"
	StatusConcluida   = "concluida"
	StatusPausada     = "pausada"
)

// Obra é o canteiro referenciado por registros de ponto, alimentação e
// custos. Nunca carrega lógica de ponto; é só a âncora de rateio.
type Obra struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index:idx_obra_tenant_codigo,unique"`
	Codigo         string          `gorm:"column:codigo;type:varchar(20);not null;index:idx_obra_tenant_codigo,unique"`
	Nome           string          `gorm:"column:nome;type:varchar(150);not null"`
	Status         string          `gorm:"column:status;type:varchar(20);not null;default:planejada"`
	Orcamento      decimal.Decimal `gorm:"column:orcamento;type:numeric(14,2);not null;default:0"`
	DataInicio     *time.Time      `gorm:"column:data_inicio;type:date"`
	DataPrevistaFim *time.Time     `gorm:"column:data_prevista_fim;type:date"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Obra) TableName() string {
	return "obra"
}

func (o Obra) OwnerTenant() uuid.UUID { return o.TenantID }

func ValidStatus(s string) bool {
	switch s {
	case StatusPlanejada, StatusEmAndamento, StatusConcluida, StatusPausada:
		return true
	default:
		return false
	}
}
