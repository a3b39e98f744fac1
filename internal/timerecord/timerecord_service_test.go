package timerecord

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/messaging/kafka"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/worksite"
)

type fakeRepo struct {
	byKey map[string]*RegistroPonto
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byKey: map[string]*RegistroPonto{}}
}

func recordKey(funcID uuid.UUID, data time.Time) string {
	return funcID.String() + "|" + data.Format(DateLayout)
}

func (f *fakeRepo) Upsert(_ context.Context, r *RegistroPonto) error {
	k := recordKey(r.FuncionarioID, r.Data)
	if prev, ok := f.byKey[k]; ok {
		r.ID = prev.ID
	}
	cp := *r
	f.byKey[k] = &cp
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*RegistroPonto, error) {
	for _, r := range f.byKey {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Get(_ context.Context, tenantID, funcID uuid.UUID, data time.Time) (*RegistroPonto, error) {
	r, ok := f.byKey[recordKey(funcID, data)]
	if !ok || r.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, tenantID uuid.UUID, _ ListFilters) ([]RegistroPonto, error) {
	var out []RegistroPonto
	for _, r := range f.byKey {
		if r.TenantID == tenantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListForPeriod(_ context.Context, tenantID, funcID uuid.UUID, start, end time.Time) ([]RegistroPonto, error) {
	var out []RegistroPonto
	for _, r := range f.byKey {
		if r.TenantID == tenantID && r.FuncionarioID == funcID && !r.Data.Before(start) && !r.Data.After(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	for k, r := range f.byKey {
		if r.ID == id && r.TenantID == tenantID {
			delete(f.byKey, k)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) DeleteByPeriod(_ context.Context, tenantID uuid.UUID, start, end time.Time, _ []uuid.UUID) (int64, error) {
	var n int64
	for k, r := range f.byKey {
		if r.TenantID == tenantID && !r.Data.Before(start) && !r.Data.After(end) {
			delete(f.byKey, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) CountByPeriod(_ context.Context, tenantID uuid.UUID, start, end time.Time, _ []uuid.UUID) (int64, []RegistroPonto, error) {
	var sample []RegistroPonto
	for _, r := range f.byKey {
		if r.TenantID == tenantID && !r.Data.Before(start) && !r.Data.After(end) {
			sample = append(sample, *r)
		}
	}
	return int64(len(sample)), sample, nil
}

type fakeEmployeeRepo struct {
	rows map[uuid.UUID]*employee.Funcionario
}

func (f *fakeEmployeeRepo) WithTx(_ *sql.Tx) employee.Repository            { return f }
func (f *fakeEmployeeRepo) Create(_ context.Context, _ *employee.Funcionario) error { return nil }
func (f *fakeEmployeeRepo) Update(_ context.Context, _ *employee.Funcionario) error { return nil }

func (f *fakeEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*employee.Funcionario, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeEmployeeRepo) FindAll(_ context.Context, tenantID uuid.UUID, _ bool) ([]employee.Funcionario, error) {
	var out []employee.Funcionario
	for _, row := range f.rows {
		if row.TenantID == tenantID {
			out = append(out, *row)
		}
	}
	return out, nil
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

type fakeWorksiteRepo struct {
	rows map[uuid.UUID]*worksite.Obra
}

func (f *fakeWorksiteRepo) Create(_ context.Context, _ *worksite.Obra) error { return nil }
func (f *fakeWorksiteRepo) Update(_ context.Context, _ *worksite.Obra) error { return nil }
func (f *fakeWorksiteRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*worksite.Obra, error) {
	row, ok := f.rows[id]
	if !ok || row.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}
func (f *fakeWorksiteRepo) FindAll(_ context.Context, _ uuid.UUID, _ string) ([]worksite.Obra, error) {
	return nil, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutbox) ListPending(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(_ context.Context, _ string) error             { return nil }
func (f *fakeOutbox) MarkFailed(_ context.Context, _ string, _ string) error { return nil }

type serviceFixture struct {
	service   Service
	repo      *fakeRepo
	outbox    *fakeOutbox
	mock      sqlmock.Sqlmock
	tenantID  uuid.UUID
	actor     tenant.Actor
	empID     uuid.UUID
	horarioID uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tenantID := uuid.New()
	empID := uuid.New()
	horarioID := uuid.New()

	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*employee.Funcionario{
		empID: {
			ID:                empID,
			TenantID:          tenantID,
			Codigo:            "F001",
			Nome:              "Carlos Silva",
			Salario:           decimal.RequireFromString("2153.26"),
			HorarioTrabalhoID: &horarioID,
			Ativo:             true,
		},
	}}
	schedules := &fakeScheduleRepo{rows: map[uuid.UUID]*schedule.HorarioTrabalho{
		horarioID: {
			ID:            horarioID,
			TenantID:      tenantID,
			Nome:          "Comercial",
			Entrada:       "07:12",
			SaidaAlmoco:   "12:00",
			RetornoAlmoco: "13:00",
			Saida:         "17:00",
			DiasSemana:    schedule.SegASex,
			HorasDiarias:  8.8,
		},
	}}

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	svc := NewService(db, repo, employees, schedules, &fakeWorksiteRepo{}, outbox)

	return &serviceFixture{
		service:   svc,
		repo:      repo,
		outbox:    outbox,
		mock:      mock,
		tenantID:  tenantID,
		actor:     tenant.Actor{ID: tenantID, Role: tenant.RoleAdmin},
		empID:     empID,
		horarioID: horarioID,
	}
}

func (f *serviceFixture) expectTx() {
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
}

func TestSubmitSaturdayWorked(t *testing.T) {
	f := newServiceFixture(t)
	f.expectTx()

	entrada, saida := "07:00", "16:00"
	resp, err := f.service.Submit(context.Background(), f.actor, SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-05",
		Tipo:          "sabado_trabalhado",
		Entrada:       &entrada,
		Saida:         &saida,
	})
	require.NoError(t, err)

	assert.Equal(t, 8.00, resp.HorasTrabalhadas)
	assert.Equal(t, 8.00, resp.HorasExtras)
	assert.Equal(t, 50.0, resp.PercentualExtras)
	assert.Zero(t, resp.TotalAtrasoMinutos)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, "timerecord.upserted", f.outbox.events[0].EventType)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitUsesPlannedSchedule(t *testing.T) {
	f := newServiceFixture(t)
	f.expectTx()

	// segunda-feira coberta pela máscara seg-sex; atraso de 30 min
	entrada, saida := "07:42", "17:00"
	resp, err := f.service.Submit(context.Background(), f.actor, SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-07",
		Tipo:          "trabalho_normal",
		Entrada:       &entrada,
		Saida:         &saida,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.TotalAtrasoMinutos)
	assert.Equal(t, 0.50, resp.TotalAtrasoHoras)
	assert.Zero(t, resp.HorasExtras)
}

func TestSubmitIsIdempotentPerDay(t *testing.T) {
	f := newServiceFixture(t)
	f.expectTx()
	f.expectTx()

	entrada, saida := "07:00", "16:00"
	req := SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-05",
		Tipo:          "sabado_trabalhado",
		Entrada:       &entrada,
		Saida:         &saida,
	}

	first, err := f.service.Submit(context.Background(), f.actor, req)
	require.NoError(t, err)
	second, err := f.service.Submit(context.Background(), f.actor, req)
	require.NoError(t, err)

	// mesma linha vence; a segunda submissão não duplica
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.repo.byKey, 1)
}

func TestSubmitCrossTenantRejected(t *testing.T) {
	f := newServiceFixture(t)

	intruder := tenant.Actor{ID: uuid.New(), Role: tenant.RoleAdmin}
	entrada, saida := "07:00", "16:00"
	_, err := f.service.Submit(context.Background(), intruder, SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-05",
		Tipo:          "sabado_trabalhado",
		Entrada:       &entrada,
		Saida:         &saida,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeOwnershipViolation, appCode(t, err))

	// nada gravado nem enfileirado
	assert.Empty(t, f.repo.byKey)
	assert.Empty(t, f.outbox.events)
}

func TestSubmitUnknownType(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Submit(context.Background(), f.actor, SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-05",
		Tipo:          "plantao_noturno",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidInput, appCode(t, err))
}

func TestDeleteByPeriodPreviewThenConfirm(t *testing.T) {
	f := newServiceFixture(t)
	f.expectTx()

	entrada, saida := "07:00", "16:00"
	_, err := f.service.Submit(context.Background(), f.actor, SubmitRecordRequest{
		FuncionarioID: f.empID.String(),
		Data:          "2025-07-05",
		Tipo:          "sabado_trabalhado",
		Entrada:       &entrada,
		Saida:         &saida,
	})
	require.NoError(t, err)

	preview, _, err := f.service.DeleteByPeriod(context.Background(), f.actor, DeleteByPeriodRequest{
		DataInicio: "2025-07-01",
		DataFim:    "2025-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), preview.Total)
	require.Len(t, preview.Amostra, 1)
	// prévia não muta nada
	assert.Len(t, f.repo.byKey, 1)

	_, result, err := f.service.DeleteByPeriod(context.Background(), f.actor, DeleteByPeriodRequest{
		DataInicio: "2025-07-01",
		DataFim:    "2025-07-31",
		Confirmar:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Excluidos)
	assert.Empty(t, f.repo.byKey)
}

func TestDeleteByPeriodInvalidPeriod(t *testing.T) {
	f := newServiceFixture(t)

	_, _, err := f.service.DeleteByPeriod(context.Background(), f.actor, DeleteByPeriodRequest{
		DataInicio: "2025-07-31",
		DataFim:    "2025-07-01",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidPeriod, appCode(t, err))
}
