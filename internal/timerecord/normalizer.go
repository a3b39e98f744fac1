package timerecord

import (
	"fmt"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

const minutesPerDay = 24 * 60

// lunchThresholdMin: acima de 6h corridas sem intervalo informado, o
// desconto padrão de 1h de almoço se aplica.
const (
	lunchThresholdMin = 6 * 60
	defaultLunchMin   = 60
)

// NormalizeInput carrega a submissão já com horários convertidos para
// minutos. Planned é nil quando o funcionário não tem horário para aquele
// dia da semana; DailyHours é a jornada usada no excedente diário quando não
// há horário planejado.
type NormalizeInput struct {
	Type        RecordType
	Entry       *calendar.Clock
	LunchOut    *calendar.Clock
	LunchReturn *calendar.Clock
	Exit        *calendar.Clock
	Planned     *schedule.PlannedDay
	DailyHours  float64
	PctOverride *float64
}

// Normalized são os campos derivados que o normalizador grava. O chamador
// nunca fornece estes valores; qualquer violação dos invariantes de tipo
// aqui é sinal de bug e aborta a escrita.
type Normalized struct {
	HoursWorked     float64
	OvertimeHours   float64
	OvertimePct     float64
	DelayEntryMin   int
	DelayExitMin    int
	TotalDelayMin   int
	TotalDelayHours float64
}

// Normalize aplica o contrato por tipo de registro: tipos sem horário zeram
// tudo; fim de semana e feriado trabalhados têm toda hora como extra e
// atraso forçado a zero; trabalho normal decompõe extra e atraso minuto a
// minuto contra o horário planejado. Toda a aritmética é em minutos
// inteiros, convertida para horas decimais uma única vez no fim.
func Normalize(in NormalizeInput) (Normalized, error) {
	if !in.Type.RequiresTimes() {
		if in.Entry != nil || in.LunchOut != nil || in.LunchReturn != nil || in.Exit != nil {
			return Normalized{}, apperror.ScheduleMismatch(in.Type.String())
		}
		return Normalized{}, nil
	}

	if in.Entry == nil || in.Exit == nil {
		return Normalized{}, apperror.MissingTimes(in.Type.String())
	}
	if (in.LunchOut == nil) != (in.LunchReturn == nil) {
		return Normalized{}, apperror.InvalidField("saida_almoco/retorno_almoco")
	}

	workedMin, err := workedMinutes(*in.Entry, in.LunchOut, in.LunchReturn, *in.Exit)
	if err != nil {
		return Normalized{}, err
	}

	out := Normalized{HoursWorked: calendar.MinutesToHours(workedMin)}

	if in.Type.AllOvertime() {
		// a regra "toda hora é extra" prevalece sobre qualquer delta
		// minuto a minuto
		out.OvertimeHours = out.HoursWorked
		out.OvertimePct = in.Type.DefaultOvertimePct()
		if in.PctOverride != nil && *in.PctOverride > 0 {
			out.OvertimePct = *in.PctOverride
		}
		return out, nil
	}

	if in.Planned != nil {
		entryDelay := maxInt(0, in.Entry.Minutes()-in.Planned.Entrada.Minutes())
		earlyEntry := maxInt(0, in.Planned.Entrada.Minutes()-in.Entry.Minutes())
		exitDelay := maxInt(0, in.Planned.Saida.Minutes()-in.Exit.Minutes())
		lateExit := maxInt(0, in.Exit.Minutes()-in.Planned.Saida.Minutes())

		out.DelayEntryMin = entryDelay
		out.DelayExitMin = exitDelay
		out.TotalDelayMin = entryDelay + exitDelay
		out.TotalDelayHours = calendar.MinutesToHours(out.TotalDelayMin)
		out.OvertimeHours = calendar.MinutesToHours(earlyEntry + lateExit)
	} else {
		daily := in.DailyHours
		if daily <= 0 {
			daily = 8
		}
		if extra := out.HoursWorked - daily; extra > 0 {
			out.OvertimeHours = calendar.Round2(extra)
		}
	}

	if out.OvertimeHours > 0 {
		out.OvertimePct = TrabalhoNormal.DefaultOvertimePct()
	}

	if out.OvertimeHours > out.HoursWorked {
		return Normalized{}, apperror.InternalInvariant(fmt.Sprintf(
			"horas extras %.2f excedem horas trabalhadas %.2f", out.OvertimeHours, out.HoursWorked))
	}
	return out, nil
}

// workedMinutes aplica a regra de tempo decorrido: saída menor que entrada
// cruza a meia-noite; intervalo de almoço informado é descontado exato,
// senão 1h padrão quando o decorrido passa de 6h.
func workedMinutes(entry calendar.Clock, lunchOut, lunchReturn *calendar.Clock, exit calendar.Clock) (int, error) {
	elapsed := exit.Minutes() - entry.Minutes()
	if elapsed < 0 {
		elapsed += minutesPerDay
	}

	lunch := 0
	switch {
	case lunchOut != nil:
		lunch = lunchReturn.Minutes() - lunchOut.Minutes()
		if lunch < 0 {
			return 0, apperror.InvalidField("retorno_almoco")
		}
	case elapsed > lunchThresholdMin:
		lunch = defaultLunchMin
	}

	worked := elapsed - lunch
	if worked < 0 {
		return 0, apperror.InvalidField("saida")
	}
	if worked > minutesPerDay {
		return 0, apperror.InvalidField("horas_trabalhadas")
	}
	return worked, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
