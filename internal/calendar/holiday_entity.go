package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Feriado é o calendário de feriados do tenant. A origem do sistema não tinha
// uma tabela canônica; aqui cada administrador mantém a sua, vazia por padrão.
type Feriado struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index:idx_feriado_tenant_data,unique"`
	Data      time.Time `gorm:"column:data;type:date;not null;index:idx_feriado_tenant_data,unique"`
	Descricao string    `gorm:"column:descricao;type:varchar(120)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Feriado) TableName() string {
	return "feriado"
}

func (f Feriado) OwnerTenant() uuid.UUID { return f.TenantID }

// HolidaySet é o conjunto de feriados de um período, indexado por data civil.
type HolidaySet map[string]struct{}

const civilDate = "2006-01-02"

func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s HolidaySet) Add(d time.Time) {
	s[d.Format(civilDate)] = struct{}{}
}

func (s HolidaySet) Has(d time.Time) bool {
	_, ok := s[d.Format(civilDate)]
	return ok
}
