package kpi

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

type fakeSnapshotReader struct {
	snap  Snapshot
	calls int
}

func (f *fakeSnapshotReader) ReadPeriod(_ context.Context, _, _ uuid.UUID, _, _ time.Time) (Snapshot, error) {
	f.calls++
	return f.snap, nil
}

type fakeEmployeeRepo struct {
	rows map[uuid.UUID]*employee.Funcionario
}

func (f *fakeEmployeeRepo) WithTx(_ *sql.Tx) employee.Repository                    { return f }
func (f *fakeEmployeeRepo) Create(_ context.Context, _ *employee.Funcionario) error { return nil }
func (f *fakeEmployeeRepo) Update(_ context.Context, _ *employee.Funcionario) error { return nil }
func (f *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*employee.Funcionario, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}
func (f *fakeEmployeeRepo) FindAll(_ context.Context, _ uuid.UUID, _ bool) ([]employee.Funcionario, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) FindAllActive(_ context.Context, _ *uuid.UUID) ([]employee.Funcionario, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) HasTimeRecords(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeEmployeeRepo) ListPhotos(_ context.Context, _ uuid.UUID) ([]employee.FotoFacial, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) AddPhoto(_ context.Context, _ *employee.FotoFacial) error { return nil }
func (f *fakeEmployeeRepo) DeletePhotos(_ context.Context, _, _ uuid.UUID) error     { return nil }

type fakeScheduleRepo struct {
	rows map[uuid.UUID]*schedule.HorarioTrabalho
}

func (f *fakeScheduleRepo) Create(_ context.Context, _ *schedule.HorarioTrabalho) error { return nil }
func (f *fakeScheduleRepo) Update(_ context.Context, _ *schedule.HorarioTrabalho) error { return nil }
func (f *fakeScheduleRepo) Delete(_ context.Context, _, _ uuid.UUID) error              { return nil }
func (f *fakeScheduleRepo) FindAll(_ context.Context, _ uuid.UUID) ([]schedule.HorarioTrabalho, error) {
	return nil, nil
}
func (f *fakeScheduleRepo) FindByID(_ context.Context, _, id uuid.UUID) (*schedule.HorarioTrabalho, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

type kpiFixture struct {
	tenantID  uuid.UUID
	empID     uuid.UUID
	horarioID uuid.UUID
	employees *fakeEmployeeRepo
	schedules *fakeScheduleRepo
	reader    *fakeSnapshotReader
	actor     tenant.Actor
}

func newKPIFixture() *kpiFixture {
	tenantID := uuid.New()
	empID := uuid.New()
	horarioID := uuid.New()

	return &kpiFixture{
		tenantID:  tenantID,
		empID:     empID,
		horarioID: horarioID,
		employees: &fakeEmployeeRepo{rows: map[uuid.UUID]*employee.Funcionario{
			empID: {
				ID:                empID,
				TenantID:          tenantID,
				Salario:           decimal.RequireFromString("2153.26"),
				HorarioTrabalhoID: &horarioID,
				Ativo:             true,
			},
		}},
		schedules: &fakeScheduleRepo{rows: map[uuid.UUID]*schedule.HorarioTrabalho{
			horarioID: {
				ID: horarioID, TenantID: tenantID,
				Entrada: "07:12", SaidaAlmoco: "12:00", RetornoAlmoco: "13:00", Saida: "17:00",
				DiasSemana: schedule.SegASex, HorasDiarias: 8.8,
			},
		}},
		reader: &fakeSnapshotReader{},
		actor:  tenant.Actor{ID: tenantID, Role: tenant.RoleAdmin},
	}
}

func julyRequest(f *kpiFixture) ComputeKPIRequest {
	return ComputeKPIRequest{
		FuncionarioID: f.empID.String(),
		DataInicio:    "2025-07-01",
		DataFim:       "2025-07-31",
	}
}

func TestComputeSaturdayScenario(t *testing.T) {
	f := newKPIFixture()
	f.reader.snap = Snapshot{
		Records: []timerecord.RegistroPonto{{
			Data:             time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC),
			Tipo:             timerecord.SabadoTrabalhado,
			HorasTrabalhadas: 8, HorasExtras: 8, PercentualExtras: 50,
		}},
		Holidays: calendar.NewHolidaySet(),
	}

	svc := NewService(f.reader, f.employees, f.schedules, nil, false)
	resp, err := svc.Compute(context.Background(), f.actor, julyRequest(f))
	require.NoError(t, err)

	assert.Equal(t, 8.0, resp.HorasExtras)
	assert.Equal(t, "10.64", resp.ValorHora)
	assert.Equal(t, "127.66", resp.CustoMaoObra)
	assert.Equal(t, 23, resp.DiasUteis)
	assert.False(t, resp.RateFallback)
}

func TestComputeForcedRateFallback(t *testing.T) {
	f := newKPIFixture()
	f.reader.snap = Snapshot{Holidays: calendar.NewHolidaySet()}

	svc := NewService(f.reader, f.employees, f.schedules, nil, true)
	resp, err := svc.Compute(context.Background(), f.actor, julyRequest(f))
	require.NoError(t, err)

	// 2153.26 / 220
	assert.True(t, resp.RateFallback)
	assert.Equal(t, "9.79", resp.ValorHora)
}

func TestComputeInvalidPeriod(t *testing.T) {
	f := newKPIFixture()

	svc := NewService(f.reader, f.employees, f.schedules, nil, false)
	_, err := svc.Compute(context.Background(), f.actor, ComputeKPIRequest{
		FuncionarioID: f.empID.String(),
		DataInicio:    "2025-07-31",
		DataFim:       "2025-07-01",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidPeriod, appErr.Code)
	assert.Zero(t, f.reader.calls)
}

func TestComputeCrossTenantBeforeAnyRead(t *testing.T) {
	f := newKPIFixture()

	svc := NewService(f.reader, f.employees, f.schedules, nil, false)
	intruder := tenant.Actor{ID: uuid.New(), Role: tenant.RoleAdmin}
	_, err := svc.Compute(context.Background(), intruder, julyRequest(f))
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeOwnershipViolation, appErr.Code)
	// nenhuma leitura de ponto aconteceu
	assert.Zero(t, f.reader.calls)
}

func TestComputeServesFromCache(t *testing.T) {
	f := newKPIFixture()

	rdb, mock := redismock.NewClientMock()
	start, _ := time.Parse("2006-01-02", "2025-07-01")
	end, _ := time.Parse("2006-01-02", "2025-07-31")
	key := cacheKey(f.tenantID.String(), f.empID.String(), start, end)

	cached := KPIResponse{FuncionarioID: f.empID.String(), CustoTotal: "127.66"}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(payload))

	svc := NewService(f.reader, f.employees, f.schedules, rdb, false)
	resp, err := svc.Compute(context.Background(), f.actor, julyRequest(f))
	require.NoError(t, err)

	assert.Equal(t, "127.66", resp.CustoTotal)
	// acerto de cache não dispara leitura transacional
	assert.Zero(t, f.reader.calls)
	require.NoError(t, mock.ExpectationsWereMet())
}
