package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
)

// Bitmask de dias da semana, bit 0 = segunda ... bit 6 = domingo.
const (
	Segunda = 1 << iota
	Terca
	Quarta
	Quinta
	Sexta
	Sabado
	Domingo

	SegASex = Segunda | Terca | Quarta | Quinta | Sexta
)

// HorarioTrabalho é o horário padrão atribuído a funcionários: horários
// planejados de entrada/almoço/saída, dias da semana cobertos e jornada
// diária em horas decimais (tipicamente 8.0–8.8).
type HorarioTrabalho struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID      `gorm:"column:tenant_id;type:uuid;not null;index"`
	Nome          string         `gorm:"column:nome;type:varchar(100);not null"`
	Entrada       string         `gorm:"column:entrada;type:varchar(5);not null"`
	SaidaAlmoco   string         `gorm:"column:saida_almoco;type:varchar(5);not null"`
	RetornoAlmoco string         `gorm:"column:retorno_almoco;type:varchar(5);not null"`
	Saida         string         `gorm:"column:saida;type:varchar(5);not null"`
	DiasSemana    int            `gorm:"column:dias_semana;not null;default:31"`
	HorasDiarias  float64        `gorm:"column:horas_diarias;not null;default:8"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (HorarioTrabalho) TableName() string {
	return "horario_trabalho"
}

func (h HorarioTrabalho) OwnerTenant() uuid.UUID { return h.TenantID }

// weekdayBit converte time.Weekday (domingo=0) para o bit da máscara.
func weekdayBit(w time.Weekday) int {
	if w == time.Sunday {
		return Domingo
	}
	return 1 << (int(w) - 1)
}

func (h HorarioTrabalho) CoversWeekday(w time.Weekday) bool {
	return h.DiasSemana&weekdayBit(w) != 0
}

// PlannedDay são os horários planejados resolvidos para uma data.
type PlannedDay struct {
	Entrada       calendar.Clock
	SaidaAlmoco   calendar.Clock
	RetornoAlmoco calendar.Clock
	Saida         calendar.Clock
	HorasDiarias  float64
}

// PlannedTimes resolve os horários planejados para a data, ou nil quando a
// máscara de dias exclui aquele dia da semana.
func (h HorarioTrabalho) PlannedTimes(date time.Time) (*PlannedDay, error) {
	if !h.CoversWeekday(date.Weekday()) {
		return nil, nil
	}

	entrada, err := calendar.ParseClock(h.Entrada)
	if err != nil {
		return nil, err
	}
	saidaAlmoco, err := calendar.ParseClock(h.SaidaAlmoco)
	if err != nil {
		return nil, err
	}
	retornoAlmoco, err := calendar.ParseClock(h.RetornoAlmoco)
	if err != nil {
		return nil, err
	}
	saida, err := calendar.ParseClock(h.Saida)
	if err != nil {
		return nil, err
	}

	return &PlannedDay{
		Entrada:       entrada,
		SaidaAlmoco:   saidaAlmoco,
		RetornoAlmoco: retornoAlmoco,
		Saida:         saida,
		HorasDiarias:  h.HorasDiarias,
	}, nil
}
