package meal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistroAlimentacao é um lançamento de alimentação por funcionário e dia,
// ligado a um restaurante e opcionalmente à obra onde a refeição foi
// servida. O valor é sempre positivo; descontos de alimentação entram como
// ajuste no canal "meal".
type RegistroAlimentacao struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	FuncionarioID uuid.UUID       `gorm:"column:funcionario_id;type:uuid;not null;index"`
	Data          time.Time       `gorm:"column:data;type:date;not null"`
	RestauranteID *uuid.UUID      `gorm:"column:restaurante_id;type:uuid"`
	ObraID        *uuid.UUID      `gorm:"column:obra_id;type:uuid"`
	TipoRefeicao  string          `gorm:"column:tipo_refeicao;type:varchar(50);not null"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (RegistroAlimentacao) TableName() string {
	return "registro_alimentacao"
}

func (r RegistroAlimentacao) OwnerTenant() uuid.UUID { return r.TenantID }
