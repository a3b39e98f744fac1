package kpi

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/adjustment"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/meal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

func day(d int) time.Time {
	return time.Date(2025, time.July, d, 0, 0, 0, 0, time.UTC)
}

// valor-hora do cenário clássico: 2153.26 / (8.8 × 23)
func scenarioRate(t *testing.T) decimal.Decimal {
	t.Helper()
	rate, fallback := calendar.HourlyRate(
		decimal.RequireFromString("2153.26"), 8.8, 23)
	require.False(t, fallback)
	return rate
}

func TestAggregateSaturdayOvertimeScenario(t *testing.T) {
	rate := scenarioRate(t)
	assert.Equal(t, "10.64", rate.Round(2).StringFixed(2))

	result := Aggregate(Input{
		Records: []timerecord.RegistroPonto{{
			Data:             day(5),
			Tipo:             timerecord.SabadoTrabalhado,
			HorasTrabalhadas: 8.00,
			HorasExtras:      8.00,
			PercentualExtras: 50,
		}},
		HourlyRate:  rate,
		WorkingDays: 23,
		DailyHours:  8.8,
	})

	assert.Equal(t, 8.00, result.HoursWorked)
	assert.Equal(t, 8.00, result.OvertimeHours)
	// 8 × 10.6386 × 1.5 em precisão cheia, arredondado só no fim
	assert.Equal(t, "127.66", result.LabourCost.StringFixed(2))
	assert.Equal(t, "127.66", result.TotalCost.StringFixed(2))
	assert.Zero(t, result.InternalInvariantViolations)
}

// as duas decomposições do custo de mão de obra fecham no mesmo total:
// todas as horas ao valor base mais a parcela do adicional, ou horas normais
// ao valor base mais extras a (1 + pct/100)
func TestLabourCostDecompositionsAgree(t *testing.T) {
	rate := scenarioRate(t)

	records := []timerecord.RegistroPonto{
		{Data: day(5), Tipo: timerecord.SabadoTrabalhado, HorasTrabalhadas: 8, HorasExtras: 8, PercentualExtras: 50},
		{Data: day(7), Tipo: timerecord.TrabalhoNormal, HorasTrabalhadas: 9.75, HorasExtras: 0.95, PercentualExtras: 60},
		{Data: day(8), Tipo: timerecord.TrabalhoNormal, HorasTrabalhadas: 8.8},
	}

	result := Aggregate(Input{Records: records, HourlyRate: rate, WorkingDays: 23, DailyHours: 8.8})

	alt := decimal.Zero
	for _, r := range records {
		regular := decimal.NewFromFloat(r.HorasTrabalhadas - r.HorasExtras)
		alt = alt.Add(regular.Mul(rate))
		if r.HorasExtras > 0 {
			mult := decimal.NewFromFloat(1 + r.PercentualExtras/100)
			alt = alt.Add(decimal.NewFromFloat(r.HorasExtras).Mul(rate).Mul(mult))
		}
	}
	assert.Equal(t, alt.Round(2).StringFixed(2), result.LabourCost.StringFixed(2))
}

func TestAggregateUnjustifiedAbsence(t *testing.T) {
	result := Aggregate(Input{
		Records: []timerecord.RegistroPonto{
			{Data: day(7), Tipo: timerecord.Falta},
			{Data: day(8), Tipo: timerecord.FaltaJustificada},
		},
		HourlyRate:  decimal.New(10, 0),
		WorkingDays: 23,
		DailyHours:  8.8,
	})

	assert.Equal(t, 1, result.UnjustifiedAbsences)
	assert.Equal(t, 1, result.JustifiedAbsences)
	assert.Equal(t, 8.0, result.LostHours)
	assert.Equal(t, calendar.Round2(100.0/23.0), result.AbsenteeismPct)
	// sem presença não há média diária nem eficiência acima de zero
	assert.Zero(t, result.DailyAverageHours)
	assert.Zero(t, result.EfficiencyPct)
}

func TestAggregateChannelSums(t *testing.T) {
	funcID := uuid.New()
	result := Aggregate(Input{
		Adjustments: []adjustment.OutroCusto{
			{FuncionarioID: funcID, Canal: adjustment.ChannelTransport, Valor: decimal.RequireFromString("90.00")},
			{FuncionarioID: funcID, Canal: adjustment.ChannelTransport, Valor: decimal.RequireFromString("-13.20")},
			{FuncionarioID: funcID, Canal: adjustment.ChannelMeal, Valor: decimal.RequireFromString("-5.00")},
			{FuncionarioID: funcID, Canal: adjustment.ChannelOther, Valor: decimal.RequireFromString("50.00")},
		},
		Meals: []meal.RegistroAlimentacao{
			{FuncionarioID: funcID, Valor: decimal.RequireFromString("18.50")},
		},
		HourlyRate:  decimal.New(10, 0),
		WorkingDays: 23,
	})

	assert.Equal(t, "76.80", result.TransportCost.StringFixed(2))
	assert.Equal(t, "13.50", result.MealCost.StringFixed(2))
	assert.Equal(t, "50.00", result.OtherCosts.StringFixed(2))
	assert.Equal(t, "140.30", result.TotalCost.StringFixed(2))
}

func TestTotalCostEqualsSumOfParts(t *testing.T) {
	rate := scenarioRate(t)
	result := Aggregate(Input{
		Records: []timerecord.RegistroPonto{
			{Data: day(5), Tipo: timerecord.SabadoTrabalhado, HorasTrabalhadas: 8, HorasExtras: 8, PercentualExtras: 50},
		},
		Adjustments: []adjustment.OutroCusto{
			{Canal: adjustment.ChannelTransport, Valor: decimal.RequireFromString("-13.20")},
		},
		Meals: []meal.RegistroAlimentacao{
			{Valor: decimal.RequireFromString("18.50")},
		},
		HourlyRate:  rate,
		WorkingDays: 23,
		DailyHours:  8.8,
	})

	sum := result.LabourCost.Add(result.MealCost).Add(result.TransportCost).Add(result.OtherCosts)
	assert.True(t, sum.Sub(result.TotalCost).Abs().LessThanOrEqual(decimal.RequireFromString("0.01")),
		"total %s difere da soma das partes %s", result.TotalCost, sum)
}

func TestAggregateCorruptRowsCounted(t *testing.T) {
	// extras acima das horas trabalhadas marcam a linha como corrompida;
	// o agregador conta e não corrige em silêncio
	result := Aggregate(Input{
		Records: []timerecord.RegistroPonto{
			{Data: day(7), Tipo: timerecord.TrabalhoNormal, HorasTrabalhadas: 4, HorasExtras: 6, PercentualExtras: 60},
		},
		HourlyRate:  decimal.New(10, 0),
		WorkingDays: 23,
		DailyHours:  8.8,
	})

	assert.Equal(t, 1, result.InternalInvariantViolations)
	assert.Equal(t, 6.0, result.OvertimeHours)
}

func TestAggregateEmptyPeriod(t *testing.T) {
	result := Aggregate(Input{HourlyRate: decimal.New(10, 0)})

	assert.Zero(t, result.HoursWorked)
	assert.Zero(t, result.ProductivityPct)
	assert.Zero(t, result.AbsenteeismPct)
	assert.Equal(t, "0.00", result.TotalCost.StringFixed(2))
}
