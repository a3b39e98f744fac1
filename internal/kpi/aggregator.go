package kpi

import (
	"github.com/shopspring/decimal"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/adjustment"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/meal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

// lostHoursPerAbsence é a jornada nominal imputada a cada falta não
// justificada nas horas perdidas e na eficiência.
const lostHoursPerAbsence = 8

// Result são os quinze indicadores do período mais os sinalizadores que
// viajam ao lado (fallback de valor-hora e linhas corrompidas).
type Result struct {
	HoursWorked         float64
	OvertimeHours       float64
	UnjustifiedAbsences int
	DelayHours          float64
	ProductivityPct     float64
	AbsenteeismPct      float64
	DailyAverageHours   float64
	JustifiedAbsences   int
	LabourCost          decimal.Decimal
	MealCost            decimal.Decimal
	TransportCost       decimal.Decimal
	OtherCosts          decimal.Decimal
	TotalCost           decimal.Decimal
	EfficiencyPct       float64
	LostHours           float64

	RateFallback bool
	// linhas históricas com extras acima das horas trabalhadas; contadas,
	// nunca corrigidas em silêncio
	InternalInvariantViolations int
}

// Input é o recorte transacional do período: linhas já lidas numa mesma
// foto do banco, mais o valor-hora e o calendário resolvidos.
type Input struct {
	Records     []timerecord.RegistroPonto
	Adjustments []adjustment.OutroCusto
	Meals       []meal.RegistroAlimentacao

	HourlyRate   decimal.Decimal
	RateFallback bool
	WorkingDays  int
	DailyHours   float64
}

// Aggregate computa os quinze indicadores. Somas monetárias correm em
// precisão cheia e só arredondam no campo final; divisões por zero rendem
// zero no percentual correspondente.
func Aggregate(in Input) Result {
	out := Result{RateFallback: in.RateFallback}

	var (
		overtimeSurcharge = decimal.Zero
		presenceDays      = map[string]struct{}{}
	)

	for _, r := range in.Records {
		out.HoursWorked += r.HorasTrabalhadas
		out.OvertimeHours += r.HorasExtras
		out.DelayHours += r.TotalAtrasoHoras

		if r.HorasExtras > r.HorasTrabalhadas {
			out.InternalInvariantViolations++
		}

		switch r.Tipo {
		case timerecord.Falta:
			out.UnjustifiedAbsences++
		case timerecord.FaltaJustificada:
			out.JustifiedAbsences++
		}

		if r.HorasTrabalhadas > 0 {
			presenceDays[r.Data.Format("2006-01-02")] = struct{}{}
		}

		if r.HorasExtras > 0 {
			pct := decimal.NewFromFloat(r.PercentualExtras).Div(decimal.NewFromInt(100))
			overtimeSurcharge = overtimeSurcharge.Add(
				decimal.NewFromFloat(r.HorasExtras).Mul(in.HourlyRate).Mul(pct))
		}
	}

	// decomposição do custo de mão de obra: todas as horas pagas ao
	// valor-hora base, mais a parcela de adicional das extras por cima
	labour := decimal.NewFromFloat(out.HoursWorked).Mul(in.HourlyRate).Add(overtimeSurcharge)

	mealCost := decimal.Zero
	for _, m := range in.Meals {
		mealCost = mealCost.Add(m.Valor)
	}
	transport := decimal.Zero
	other := decimal.Zero
	for _, a := range in.Adjustments {
		switch a.Canal {
		case adjustment.ChannelTransport:
			transport = transport.Add(a.Valor)
		case adjustment.ChannelMeal:
			mealCost = mealCost.Add(a.Valor)
		default:
			other = other.Add(a.Valor)
		}
	}

	out.LabourCost = labour.Round(2)
	out.MealCost = mealCost.Round(2)
	out.TransportCost = transport.Round(2)
	out.OtherCosts = other.Round(2)
	out.TotalCost = labour.Add(mealCost).Add(transport).Add(other).Round(2)

	out.HoursWorked = calendar.Round2(out.HoursWorked)
	out.OvertimeHours = calendar.Round2(out.OvertimeHours)
	out.DelayHours = calendar.Round2(out.DelayHours)

	expected := float64(in.WorkingDays) * in.DailyHours
	if expected > 0 {
		out.ProductivityPct = calendar.Round2(100 * out.HoursWorked / expected)
	}
	if in.WorkingDays > 0 {
		out.AbsenteeismPct = calendar.Round2(100 * float64(out.UnjustifiedAbsences) / float64(in.WorkingDays))
	}
	if n := len(presenceDays); n > 0 {
		out.DailyAverageHours = calendar.Round2(out.HoursWorked / float64(n))
	}

	out.LostHours = calendar.Round2(out.DelayHours + lostHoursPerAbsence*float64(out.UnjustifiedAbsences))

	if denom := out.HoursWorked + out.DelayHours + lostHoursPerAbsence*float64(out.UnjustifiedAbsences); denom > 0 {
		eff := 100 * out.HoursWorked / denom
		if eff < 0 {
			eff = 0
		}
		if eff > 100 {
			eff = 100
		}
		out.EfficiencyPct = calendar.Round2(eff)
	}

	return out
}
