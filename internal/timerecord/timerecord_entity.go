package timerecord

import (
	"time"

	"github.com/google/uuid"
)

// RegistroPonto é o registro canônico de ponto, um por (funcionario, data).
// Os campos derivados (horas, extras, atrasos) são sempre escritos pelo
// normalizador; nunca são aceitos crus do chamador.
type RegistroPonto struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	FuncionarioID uuid.UUID  `gorm:"column:funcionario_id;type:uuid;not null;uniqueIndex:idx_registro_ponto_funcionario_data,priority:1"`
	Data          time.Time  `gorm:"column:data;type:date;not null;uniqueIndex:idx_registro_ponto_funcionario_data,priority:2"`
	Tipo          RecordType `gorm:"column:tipo;type:varchar(30);not null"`

	Entrada       *string `gorm:"column:entrada;type:varchar(5)"`
	SaidaAlmoco   *string `gorm:"column:saida_almoco;type:varchar(5)"`
	RetornoAlmoco *string `gorm:"column:retorno_almoco;type:varchar(5)"`
	Saida         *string `gorm:"column:saida;type:varchar(5)"`

	HorasTrabalhadas     float64 `gorm:"column:horas_trabalhadas;not null;default:0"`
	HorasExtras          float64 `gorm:"column:horas_extras;not null;default:0"`
	PercentualExtras     float64 `gorm:"column:percentual_extras;not null;default:0"`
	MinutosAtrasoEntrada int     `gorm:"column:minutos_atraso_entrada;not null;default:0"`
	MinutosAtrasoSaida   int     `gorm:"column:minutos_atraso_saida;not null;default:0"`
	TotalAtrasoMinutos   int     `gorm:"column:total_atraso_minutos;not null;default:0"`
	TotalAtrasoHoras     float64 `gorm:"column:total_atraso_horas;not null;default:0"`

	ObraID      *uuid.UUID `gorm:"column:obra_id;type:uuid;index"`
	Observacoes string     `gorm:"column:observacoes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (RegistroPonto) TableName() string {
	return "registro_ponto"
}

func (r RegistroPonto) OwnerTenant() uuid.UUID { return r.TenantID }
