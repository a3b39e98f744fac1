package timerecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
)

func clock(t *testing.T, s string) *calendar.Clock {
	t.Helper()
	c, err := calendar.ParseClock(s)
	require.NoError(t, err)
	return &c
}

// horário padrão dos cenários: 07:12–17:00, jornada 8.8h
func plannedDay(t *testing.T) *schedule.PlannedDay {
	return &schedule.PlannedDay{
		Entrada:       *clock(t, "07:12"),
		SaidaAlmoco:   *clock(t, "12:00"),
		RetornoAlmoco: *clock(t, "13:00"),
		Saida:         *clock(t, "17:00"),
		HorasDiarias:  8.8,
	}
}

func TestNormalizeSaturdayWorked(t *testing.T) {
	// entrada 07:00, saída 16:00, sem almoço informado: 9h corridas menos
	// 1h padrão = 8h, tudo extra a 50%
	out, err := Normalize(NormalizeInput{
		Type:  SabadoTrabalhado,
		Entry: clock(t, "07:00"),
		Exit:  clock(t, "16:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 8.00, out.HoursWorked)
	assert.Equal(t, 8.00, out.OvertimeHours)
	assert.Equal(t, 50.0, out.OvertimePct)
	assert.Zero(t, out.TotalDelayMin)
	assert.Zero(t, out.TotalDelayHours)
}

func TestNormalizeEarlyEntryLateExit(t *testing.T) {
	// planejado 07:12–17:00; real 07:05–17:50. 7 min antecipados mais
	// 50 min além somam 57 min de extra, que são 0.95h e não 0.57
	out, err := Normalize(NormalizeInput{
		Type:    TrabalhoNormal,
		Entry:   clock(t, "07:05"),
		Exit:    clock(t, "17:50"),
		Planned: plannedDay(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 9.75, out.HoursWorked)
	assert.Equal(t, 0.95, out.OvertimeHours)
	assert.Equal(t, 60.0, out.OvertimePct)
	assert.Zero(t, out.TotalDelayMin)
}

func TestNormalizeEntryDelay(t *testing.T) {
	// 30 min de atraso na entrada, saída no horário
	out, err := Normalize(NormalizeInput{
		Type:    TrabalhoNormal,
		Entry:   clock(t, "07:42"),
		Exit:    clock(t, "17:00"),
		Planned: plannedDay(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 30, out.DelayEntryMin)
	assert.Equal(t, 30, out.TotalDelayMin)
	assert.Equal(t, 0.50, out.TotalDelayHours)
	assert.Zero(t, out.OvertimeHours)
	assert.Zero(t, out.OvertimePct)
}

func TestNormalizeUnjustifiedAbsence(t *testing.T) {
	out, err := Normalize(NormalizeInput{Type: Falta})
	require.NoError(t, err)
	assert.Zero(t, out.HoursWorked)
	assert.Zero(t, out.OvertimeHours)
	assert.Zero(t, out.OvertimePct)
}

func TestNormalizeAbsenceWithTimesRejected(t *testing.T) {
	_, err := Normalize(NormalizeInput{
		Type:  Falta,
		Entry: clock(t, "07:00"),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeScheduleMismatch, appCode(t, err))
}

func TestNormalizeMissingTimes(t *testing.T) {
	_, err := Normalize(NormalizeInput{Type: TrabalhoNormal, Entry: clock(t, "07:00")})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeMissingTimes, appCode(t, err))
}

func TestNormalizeLunchInterval(t *testing.T) {
	// intervalo informado é descontado exato, não o padrão de 1h
	out, err := Normalize(NormalizeInput{
		Type:        TrabalhoNormal,
		Entry:       clock(t, "08:00"),
		LunchOut:    clock(t, "12:00"),
		LunchReturn: clock(t, "12:30"),
		Exit:        clock(t, "17:00"),
		DailyHours:  8.8,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.5, out.HoursWorked)
}

func TestNormalizeHalfLunchRejected(t *testing.T) {
	_, err := Normalize(NormalizeInput{
		Type:     TrabalhoNormal,
		Entry:    clock(t, "08:00"),
		LunchOut: clock(t, "12:00"),
		Exit:     clock(t, "17:00"),
	})
	require.Error(t, err)
}

func TestNormalizeShortDayNoDefaultLunch(t *testing.T) {
	// até 6h corridas não há desconto padrão de almoço
	out, err := Normalize(NormalizeInput{
		Type:       TrabalhoNormal,
		Entry:      clock(t, "08:00"),
		Exit:       clock(t, "13:00"),
		DailyHours: 8.8,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.HoursWorked)
}

func TestNormalizeExitEqualsEntry(t *testing.T) {
	out, err := Normalize(NormalizeInput{
		Type:       TrabalhoNormal,
		Entry:      clock(t, "08:00"),
		Exit:       clock(t, "08:00"),
		DailyHours: 8,
	})
	require.NoError(t, err)
	assert.Zero(t, out.HoursWorked)
}

func TestNormalizeCrossesMidnight(t *testing.T) {
	// saída menor que entrada cruza a meia-noite: 22:00–06:00 são 8h
	// corridas menos 1h padrão
	out, err := Normalize(NormalizeInput{
		Type:       TrabalhoNormal,
		Entry:      clock(t, "22:00"),
		Exit:       clock(t, "06:00"),
		DailyHours: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.HoursWorked)
}

func TestNormalizeDailyExcessFallback(t *testing.T) {
	// sem horário planejado, o excedente sobre a jornada vira extra
	out, err := Normalize(NormalizeInput{
		Type:       TrabalhoNormal,
		Entry:      clock(t, "07:00"),
		Exit:       clock(t, "18:00"),
		DailyHours: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, out.HoursWorked)
	assert.Equal(t, 2.0, out.OvertimeHours)
	assert.Equal(t, 60.0, out.OvertimePct)
}

func TestNormalizeSundayHolidayPct(t *testing.T) {
	for _, tipo := range []RecordType{DomingoTrabalhado, FeriadoTrabalhado} {
		out, err := Normalize(NormalizeInput{
			Type:  tipo,
			Entry: clock(t, "08:00"),
			Exit:  clock(t, "12:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, out.HoursWorked, out.OvertimeHours, tipo)
		assert.Equal(t, 100.0, out.OvertimePct, tipo)
	}
}

func TestNormalizePctOverrideOnlyForWeekendTypes(t *testing.T) {
	override := 80.0

	out, err := Normalize(NormalizeInput{
		Type:        SabadoTrabalhado,
		Entry:       clock(t, "08:00"),
		Exit:        clock(t, "12:00"),
		PctOverride: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.0, out.OvertimePct)

	// em dia normal o percentual é sempre 60 quando há extra
	out, err = Normalize(NormalizeInput{
		Type:        TrabalhoNormal,
		Entry:       clock(t, "07:00"),
		Exit:        clock(t, "18:00"),
		DailyHours:  8,
		PctOverride: &override,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, out.OvertimePct)
}

func TestParseRecordTypeAliases(t *testing.T) {
	cases := map[string]RecordType{
		"trabalho_normal":      TrabalhoNormal,
		"trabalhado":           TrabalhoNormal,
		"meio_periodo":         TrabalhoNormal,
		"sabado_horas_extras":  SabadoTrabalhado,
		"domingo_horas_extras": DomingoTrabalhado,
		"feriado":              FeriadoTrabalhado,
		"  FALTA  ":            Falta,
	}
	for label, want := range cases {
		got, err := ParseRecordType(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}

	_, err := ParseRecordType("hora_extra_dobrada")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidInput, appCode(t, err))
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, "esperava *apperror.AppError, veio %T", err)
	return appErr.Code
}
