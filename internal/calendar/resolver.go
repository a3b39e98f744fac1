package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

type DayClass string

const (
	DiaUtil  DayClass = "dia_util"
	Sabado   DayClass = "sabado"
	Domingo  DayClass = "domingo"
	FeriadoD DayClass = "feriado"
)

// FallbackMonthlyHours é o divisor clássico de 220 horas/mês, usado somente
// quando nem horário nem calendário estão disponíveis. O KPI resultante
// carrega rate_fallback=true.
const FallbackMonthlyHours = 220

// Classify devolve a classe do dia para o calendário do tenant. Feriado
// prevalece sobre a classe do dia da semana; um conjunto vazio de feriados se
// comporta como o calendário civil puro.
func Classify(date time.Time, holidays HolidaySet) DayClass {
	if holidays.Has(date) {
		return FeriadoD
	}
	switch date.Weekday() {
	case time.Saturday:
		return Sabado
	case time.Sunday:
		return Domingo
	default:
		return DiaUtil
	}
}

// WorkingDays conta os dias úteis (segunda a sexta menos feriados do tenant)
// no intervalo fechado [start, end].
func WorkingDays(start, end time.Time, holidays HolidaySet) int {
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if Classify(d, holidays) == DiaUtil {
			count++
		}
	}
	return count
}

// MonthRange devolve o intervalo fechado do mês civil.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// HourlyRate deriva o valor-hora do salário mensal:
// salário / (horas diárias × dias úteis do período).
// Quando o divisor não é computável, cai para salário/220 e sinaliza o
// fallback para o agregador propagar no KPI.
func HourlyRate(salary decimal.Decimal, dailyHours float64, workingDays int) (rate decimal.Decimal, fallback bool) {
	if dailyHours > 0 && workingDays > 0 {
		divisor := decimal.NewFromFloat(dailyHours).Mul(decimal.NewFromInt(int64(workingDays)))
		return salary.DivRound(divisor, 8), false
	}
	return salary.DivRound(decimal.NewFromInt(FallbackMonthlyHours), 8), true
}
