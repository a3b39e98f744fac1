package timerecord

import (
	"strings"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

// RecordType enumera os dez tipos canônicos de registro de ponto. Todo o
// resto do sistema (normalizador, agregador, lançamento em lote) trabalha
// somente com os valores canônicos; rótulos legados entram apenas pela
// tabela de aliases abaixo, na ingestão.
type RecordType string

const (
	TrabalhoNormal    RecordType = "trabalho_normal"
	SabadoTrabalhado  RecordType = "sabado_trabalhado"
	DomingoTrabalhado RecordType = "domingo_trabalhado"
	FeriadoTrabalhado RecordType = "feriado_trabalhado"
	Falta             RecordType = "falta"
	FaltaJustificada  RecordType = "falta_justificada"
	Ferias            RecordType = "ferias"
	SabadoFolga       RecordType = "sabado_folga"
	DomingoFolga      RecordType = "domingo_folga"
	FeriadoFolga      RecordType = "feriado_folga"
)

var canonical = map[RecordType]struct{}{
	TrabalhoNormal:    {},
	SabadoTrabalhado:  {},
	DomingoTrabalhado: {},
	FeriadoTrabalhado: {},
	Falta:             {},
	FaltaJustificada:  {},
	Ferias:            {},
	SabadoFolga:       {},
	DomingoFolga:      {},
	FeriadoFolga:      {},
}

// Rótulos históricos ainda aceitos na entrada. A linha de legado vem dos
// scripts antigos de lançamento; nunca são gravados no banco.
var aliases = map[string]RecordType{
	"trabalhado":           TrabalhoNormal,
	"meio_periodo":         TrabalhoNormal,
	"sabado_horas_extras":  SabadoTrabalhado,
	"domingo_horas_extras": DomingoTrabalhado,
	"feriado":              FeriadoTrabalhado,
}

// ParseRecordType resolve um rótulo de entrada (canônico ou legado) para o
// tipo canônico, ou InvalidInput quando desconhecido.
func ParseRecordType(label string) (RecordType, error) {
	norm := strings.ToLower(strings.TrimSpace(label))
	if _, ok := canonical[RecordType(norm)]; ok {
		return RecordType(norm), nil
	}
	if t, ok := aliases[norm]; ok {
		return t, nil
	}
	return "", apperror.InvalidField("tipo")
}

// RequiresTimes diz se o tipo exige horários de entrada e saída.
func (t RecordType) RequiresTimes() bool {
	switch t {
	case TrabalhoNormal, SabadoTrabalhado, DomingoTrabalhado, FeriadoTrabalhado:
		return true
	}
	return false
}

// AllOvertime diz se o tipo é trabalho em fim de semana ou feriado, onde
// toda hora trabalhada é extra e os atrasos são forçados a zero.
func (t RecordType) AllOvertime() bool {
	switch t {
	case SabadoTrabalhado, DomingoTrabalhado, FeriadoTrabalhado:
		return true
	}
	return false
}

// DefaultOvertimePct devolve o percentual de adicional do tipo: 50 no
// sábado, 100 em domingo e feriado, 60 para extra em dia normal.
func (t RecordType) DefaultOvertimePct() float64 {
	switch t {
	case SabadoTrabalhado:
		return 50
	case DomingoTrabalhado, FeriadoTrabalhado:
		return 100
	case TrabalhoNormal:
		return 60
	}
	return 0
}

// IsRestDay diz se o tipo é folga declarada (sábado, domingo ou feriado).
func (t RecordType) IsRestDay() bool {
	switch t {
	case SabadoFolga, DomingoFolga, FeriadoFolga:
		return true
	}
	return false
}

func (t RecordType) String() string { return string(t) }
