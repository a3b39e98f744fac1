package adjustment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Canais de custo do KPI. O canal nunca vem do chamador; é derivado do
// rótulo da categoria na gravação.
const (
	ChannelTransport = "transport"
	ChannelMeal      = "meal"
	ChannelOther     = "other"
)

// OutroCusto é um ajuste financeiro avulso de um funcionário: bônus,
// descontos, vale-transporte, vale-alimentação. O sinal do valor é
// normalizado pelo rótulo; descontos são sempre negativos.
type OutroCusto struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index"`
	FuncionarioID uuid.UUID       `gorm:"column:funcionario_id;type:uuid;not null;index"`
	Data          time.Time       `gorm:"column:data;type:date;not null"`
	Categoria     string          `gorm:"column:categoria;type:varchar(100);not null"`
	Valor         decimal.Decimal `gorm:"column:valor;type:numeric(12,2);not null"`
	Canal         string          `gorm:"column:canal;type:varchar(20);not null"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (OutroCusto) TableName() string {
	return "outro_custo"
}

func (o OutroCusto) OwnerTenant() uuid.UUID { return o.TenantID }
