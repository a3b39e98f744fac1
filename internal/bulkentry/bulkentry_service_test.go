package bulkentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

// fakeRecordService grava cada submissão como se o normalizador tivesse
// aceitado; o lote não reimplementa o contrato por tipo.
type fakeRecordService struct {
	existing map[string]struct{}
	submits  []timerecord.SubmitRecordRequest
}

func pairKey(funcID, data string) string { return funcID + "|" + data }

func (f *fakeRecordService) Submit(_ context.Context, _ tenant.Actor, req timerecord.SubmitRecordRequest) (timerecord.RecordResponse, error) {
	f.submits = append(f.submits, req)
	f.existing[pairKey(req.FuncionarioID, req.Data)] = struct{}{}
	return timerecord.RecordResponse{FuncionarioID: req.FuncionarioID, Data: req.Data}, nil
}

func (f *fakeRecordService) Get(_ context.Context, _ tenant.Actor, _, _ string) (timerecord.RecordResponse, error) {
	return timerecord.RecordResponse{}, gorm.ErrRecordNotFound
}
func (f *fakeRecordService) List(_ context.Context, _ tenant.Actor, _ timerecord.ListRecordsRequest) ([]timerecord.RecordResponse, error) {
	return nil, nil
}
func (f *fakeRecordService) Delete(_ context.Context, _ tenant.Actor, _ string) error { return nil }
func (f *fakeRecordService) DeleteByPeriod(_ context.Context, _ tenant.Actor, _ timerecord.DeleteByPeriodRequest) (timerecord.DeletePreviewResponse, timerecord.DeleteByPeriodResponse, error) {
	return timerecord.DeletePreviewResponse{}, timerecord.DeleteByPeriodResponse{}, nil
}

// fakeStore responde só à checagem de existência do lote.
type fakeStore struct {
	existing map[string]struct{}
}

func (f *fakeStore) Upsert(_ context.Context, _ *timerecord.RegistroPonto) error { return nil }
func (f *fakeStore) FindByID(_ context.Context, _ uuid.UUID) (*timerecord.RegistroPonto, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStore) Get(_ context.Context, _, funcID uuid.UUID, data time.Time) (*timerecord.RegistroPonto, error) {
	if _, ok := f.existing[pairKey(funcID.String(), data.Format("2006-01-02"))]; ok {
		return &timerecord.RegistroPonto{FuncionarioID: funcID, Data: data}, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeStore) List(_ context.Context, _ uuid.UUID, _ timerecord.ListFilters) ([]timerecord.RegistroPonto, error) {
	return nil, nil
}
func (f *fakeStore) ListForPeriod(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]timerecord.RegistroPonto, error) {
	return nil, nil
}
func (f *fakeStore) Delete(_ context.Context, _, _ uuid.UUID) error { return nil }
func (f *fakeStore) DeleteByPeriod(_ context.Context, _ uuid.UUID, _, _ time.Time, _ []uuid.UUID) (int64, error) {
	return 0, nil
}
func (f *fakeStore) CountByPeriod(_ context.Context, _ uuid.UUID, _, _ time.Time, _ []uuid.UUID) (int64, []timerecord.RegistroPonto, error) {
	return 0, nil, nil
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

type bulkFixture struct {
	service  Service
	records  *fakeRecordService
	store    *fakeStore
	tenantID uuid.UUID
	empID    uuid.UUID
	actor    tenant.Actor
}

func newBulkFixture() *bulkFixture {
	tenantID := uuid.New()
	empID := uuid.New()
	horarioID := uuid.New()

	existing := map[string]struct{}{}
	records := &fakeRecordService{existing: existing}
	store := &fakeStore{existing: existing}

	employees := &fakeEmployeeRepo{rows: map[uuid.UUID]*employee.Funcionario{
		empID: {ID: empID, TenantID: tenantID, HorarioTrabalhoID: &horarioID, Ativo: true},
	}}
	schedules := &fakeScheduleRepo{rows: map[uuid.UUID]*schedule.HorarioTrabalho{
		horarioID: {
			ID: horarioID, TenantID: tenantID,
			Entrada: "07:12", SaidaAlmoco: "12:00", RetornoAlmoco: "13:00", Saida: "17:00",
			DiasSemana: schedule.SegASex, HorasDiarias: 8.8,
		},
	}}

	return &bulkFixture{
		service:  NewService(records, store, employees, schedules),
		records:  records,
		store:    store,
		tenantID: tenantID,
		empID:    empID,
		actor:    tenant.Actor{ID: tenantID, Role: tenant.RoleAdmin},
	}
}

// 2025-07-07 (segunda) a 2025-07-13 (domingo)
func weekRequest(f *bulkFixture, politica string) ApplyRequest {
	entrada, saida := "07:12", "17:00"
	return ApplyRequest{
		Template:       Template{Tipo: "trabalho_normal", Entrada: &entrada, Saida: &saida},
		FuncionarioIDs: []string{f.empID.String()},
		DataInicio:     "2025-07-07",
		DataFim:        "2025-07-13",
		Politica:       politica,
	}
}

func TestApplyHonoursWeekdayMask(t *testing.T) {
	f := newBulkFixture()

	resp, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicySkipExisting))
	require.NoError(t, err)

	// máscara seg-sex: sábado e domingo ficam de fora
	assert.Equal(t, 5, resp.Criados)
	assert.Len(t, f.records.submits, 5)
	for _, sub := range f.records.submits {
		d, err := time.Parse("2006-01-02", sub.Data)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestApplyRestDayIgnoresMask(t *testing.T) {
	f := newBulkFixture()

	resp, err := f.service.Apply(context.Background(), f.actor, ApplyRequest{
		Template:       Template{Tipo: "sabado_folga"},
		FuncionarioIDs: []string{f.empID.String()},
		DataInicio:     "2025-07-12",
		DataFim:        "2025-07-12",
		Politica:       PolicySkipExisting,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Criados)
}

func TestApplySkipExistingConverges(t *testing.T) {
	f := newBulkFixture()

	first, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicySkipExisting))
	require.NoError(t, err)
	assert.Equal(t, 5, first.Criados)

	second, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicySkipExisting))
	require.NoError(t, err)
	assert.Zero(t, second.Criados)
	assert.Equal(t, 5, second.Ignorados)
	// nenhuma nova escrita
	assert.Len(t, f.records.submits, 5)
}

func TestApplyOverwriteUpdates(t *testing.T) {
	f := newBulkFixture()

	_, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicySkipExisting))
	require.NoError(t, err)

	resp, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicyOverwrite))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Alterados)
	assert.Zero(t, resp.Criados)
}

func TestApplyFailOnConflict(t *testing.T) {
	f := newBulkFixture()

	_, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicySkipExisting))
	require.NoError(t, err)

	resp, err := f.service.Apply(context.Background(), f.actor, weekRequest(f, PolicyFailOnConflict))
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Falhas)
	// os pares que falharam não geraram escrita nova
	assert.Len(t, f.records.submits, 5)
}

func TestApplyInvalidPeriod(t *testing.T) {
	f := newBulkFixture()

	_, err := f.service.Apply(context.Background(), f.actor, ApplyRequest{
		Template:       Template{Tipo: "trabalho_normal"},
		FuncionarioIDs: []string{f.empID.String()},
		DataInicio:     "2025-07-13",
		DataFim:        "2025-07-07",
		Politica:       PolicySkipExisting,
	})
	require.Error(t, err)
}
