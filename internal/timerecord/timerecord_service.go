package timerecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/messaging/kafka"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/contextutil"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/worksite"
)

const DateLayout = "2006-01-02"

// maxPeriodDays limita períodos implausíveis em listagens e exclusões.
const maxPeriodDays = 366

// bulkQueryTimeout limita prévias e exclusões em massa; no estouro a
// operação falha com Timeout sem efeito colateral.
const bulkQueryTimeout = 30 * time.Second

//go:generate mockgen -source=timerecord_service.go -destination=mock/timerecord_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor tenant.Actor, req SubmitRecordRequest) (RecordResponse, error)
	Get(ctx context.Context, actor tenant.Actor, funcionarioID, data string) (RecordResponse, error)
	List(ctx context.Context, actor tenant.Actor, req ListRecordsRequest) ([]RecordResponse, error)
	Delete(ctx context.Context, actor tenant.Actor, id string) error
	DeleteByPeriod(ctx context.Context, actor tenant.Actor, req DeleteByPeriodRequest) (DeletePreviewResponse, DeleteByPeriodResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	schedules schedule.Repository
	worksites worksite.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	schedules schedule.Repository,
	worksites worksite.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		schedules: schedules,
		worksites: worksites,
		outbox:    outboxRepo,
		logger:    zap.L().Named("timerecord.service"),
	}
}

// resolveEmployee busca o funcionário sem filtro de partição e então decide
// entre NotFound e OwnershipViolation, antes de qualquer leitura de ponto.
func (s *service) resolveEmployee(ctx context.Context, actor tenant.Actor, id string) (*employee.Funcionario, error) {
	funcID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.InvalidField("funcionario_id")
	}

	emp, err := s.employees.FindByID(ctx, funcID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	if err := tenant.AssertOwned(emp, actor.ResolveTenant()); err != nil {
		return nil, err
	}
	return emp, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.InvalidField("data")
	}
	return d, nil
}

func parseOptionalClock(field string, v *string) (*calendar.Clock, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	c, err := calendar.ParseClock(*v)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &c, nil
}

func (s *service) Submit(ctx context.Context, actor tenant.Actor, req SubmitRecordRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	emp, err := s.resolveEmployee(ctx, actor, req.FuncionarioID)
	if err != nil {
		return RecordResponse{}, err
	}

	data, err := parseDate(req.Data)
	if err != nil {
		return RecordResponse{}, err
	}
	tipo, err := ParseRecordType(req.Tipo)
	if err != nil {
		return RecordResponse{}, err
	}

	entrada, err := parseOptionalClock("entrada", req.Entrada)
	if err != nil {
		return RecordResponse{}, err
	}
	saidaAlmoco, err := parseOptionalClock("saida_almoco", req.SaidaAlmoco)
	if err != nil {
		return RecordResponse{}, err
	}
	retornoAlmoco, err := parseOptionalClock("retorno_almoco", req.RetornoAlmoco)
	if err != nil {
		return RecordResponse{}, err
	}
	saida, err := parseOptionalClock("saida", req.Saida)
	if err != nil {
		return RecordResponse{}, err
	}

	var obraID *uuid.UUID
	if req.ObraID != nil && *req.ObraID != "" {
		id, err := uuid.Parse(*req.ObraID)
		if err != nil {
			return RecordResponse{}, apperror.InvalidField("obra_id")
		}
		if _, err := s.worksites.FindByID(ctx, emp.TenantID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RecordResponse{}, apperror.ErrNotFound
			}
			return RecordResponse{}, err
		}
		obraID = &id
	}

	planned, dailyHours, err := s.plannedFor(ctx, emp, data)
	if err != nil {
		return RecordResponse{}, err
	}

	norm, err := Normalize(NormalizeInput{
		Type:        tipo,
		Entry:       entrada,
		LunchOut:    saidaAlmoco,
		LunchReturn: retornoAlmoco,
		Exit:        saida,
		Planned:     planned,
		DailyHours:  dailyHours,
		PctOverride: req.PercentualExtras,
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeInternalInvariant {
			s.logger.Error("registro viola invariante após normalização",
				zap.String("request_id", rid),
				zap.String("funcionario_id", emp.ID.String()),
				zap.String("data", req.Data),
				zap.Error(err),
			)
		}
		return RecordResponse{}, err
	}

	rec := &RegistroPonto{
		ID:            uuid.New(),
		TenantID:      emp.TenantID,
		FuncionarioID: emp.ID,
		Data:          data,
		Tipo:          tipo,
		Entrada:       req.Entrada,
		SaidaAlmoco:   req.SaidaAlmoco,
		RetornoAlmoco: req.RetornoAlmoco,
		Saida:         req.Saida,

		HorasTrabalhadas:     norm.HoursWorked,
		HorasExtras:          norm.OvertimeHours,
		PercentualExtras:     norm.OvertimePct,
		MinutosAtrasoEntrada: norm.DelayEntryMin,
		MinutosAtrasoSaida:   norm.DelayExitMin,
		TotalAtrasoMinutos:   norm.TotalDelayMin,
		TotalAtrasoHoras:     norm.TotalDelayHours,

		ObraID:      obraID,
		Observacoes: req.Observacoes,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.logger.Error("upsert de ponto falhou",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return RecordResponse{}, err
	}

	// o upsert aceita submissão repetida do mesmo dia; recarrega para
	// devolver o id da linha vencedora
	stored, err := s.repo.Get(ctx, emp.TenantID, emp.ID, data)
	if err != nil {
		return RecordResponse{}, err
	}

	if err := s.queueRecordEvent(ctx, tx, events.TimeRecordUpserted, stored); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, err
	}

	s.logger.Info("registro de ponto gravado",
		zap.String("request_id", rid),
		zap.String("record_id", stored.ID.String()),
		zap.String("tipo", tipo.String()),
	)
	return mapToResponse(*stored), nil
}

// plannedFor resolve os horários planejados do funcionário para a data;
// devolve nil quando não há horário atribuído ou a máscara de dias exclui o
// dia da semana.
func (s *service) plannedFor(ctx context.Context, emp *employee.Funcionario, data time.Time) (*schedule.PlannedDay, float64, error) {
	if emp.HorarioTrabalhoID == nil {
		return nil, 0, nil
	}

	horario, err := s.schedules.FindByID(ctx, emp.TenantID, *emp.HorarioTrabalhoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	planned, err := horario.PlannedTimes(data)
	if err != nil {
		return nil, 0, err
	}
	return planned, horario.HorasDiarias, nil
}

func (s *service) Get(ctx context.Context, actor tenant.Actor, funcionarioID, data string) (RecordResponse, error) {
	emp, err := s.resolveEmployee(ctx, actor, funcionarioID)
	if err != nil {
		return RecordResponse{}, err
	}

	d, err := parseDate(data)
	if err != nil {
		return RecordResponse{}, err
	}

	rec, err := s.repo.Get(ctx, emp.TenantID, emp.ID, d)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, apperror.ErrNotFound
		}
		return RecordResponse{}, err
	}
	return mapToResponse(*rec), nil
}

func (s *service) List(ctx context.Context, actor tenant.Actor, req ListRecordsRequest) ([]RecordResponse, error) {
	var f ListFilters

	if req.FuncionarioID != nil && *req.FuncionarioID != "" {
		id, err := uuid.Parse(*req.FuncionarioID)
		if err != nil {
			return nil, apperror.InvalidField("funcionario_id")
		}
		f.FuncionarioID = &id
	}
	if req.ObraID != nil && *req.ObraID != "" {
		id, err := uuid.Parse(*req.ObraID)
		if err != nil {
			return nil, apperror.InvalidField("obra_id")
		}
		f.ObraID = &id
	}
	if req.Tipo != nil && *req.Tipo != "" {
		t, err := ParseRecordType(*req.Tipo)
		if err != nil {
			return nil, err
		}
		f.Tipo = &t
	}
	if req.DataInicio != nil && *req.DataInicio != "" {
		d, err := parseDate(*req.DataInicio)
		if err != nil {
			return nil, err
		}
		f.DataInicio = &d
	}
	if req.DataFim != nil && *req.DataFim != "" {
		d, err := parseDate(*req.DataFim)
		if err != nil {
			return nil, err
		}
		f.DataFim = &d
	}
	if f.DataInicio != nil && f.DataFim != nil {
		if err := validatePeriod(*f.DataInicio, *f.DataFim); err != nil {
			return nil, err
		}
	}

	rows, err := s.repo.List(ctx, actor.ResolveTenant(), f)
	if err != nil {
		return nil, err
	}

	res := make([]RecordResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, actor tenant.Actor, id string) error {
	recID, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidField("id")
	}

	rec, err := s.repo.FindByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if err := tenant.AssertOwned(rec, actor.ResolveTenant()); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.Delete(ctx, rec.TenantID, rec.ID); err != nil {
		return err
	}
	if err := s.queueRecordEvent(ctx, tx, events.TimeRecordDeleted, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteByPeriod é destrutivo em duas etapas: sem confirmação devolve só a
// contagem e uma amostra; com confirmação efetiva a exclusão.
func (s *service) DeleteByPeriod(ctx context.Context, actor tenant.Actor, req DeleteByPeriodRequest) (DeletePreviewResponse, DeleteByPeriodResponse, error) {
	start, err := parseDate(req.DataInicio)
	if err != nil {
		return DeletePreviewResponse{}, DeleteByPeriodResponse{}, err
	}
	end, err := parseDate(req.DataFim)
	if err != nil {
		return DeletePreviewResponse{}, DeleteByPeriodResponse{}, err
	}
	if err := validatePeriod(start, end); err != nil {
		return DeletePreviewResponse{}, DeleteByPeriodResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(req.FuncionarioIDs))
	for _, raw := range req.FuncionarioIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return DeletePreviewResponse{}, DeleteByPeriodResponse{}, apperror.InvalidField("funcionario_ids")
		}
		ids = append(ids, id)
	}

	tenantID := actor.ResolveTenant()

	boundedCtx, cancel := context.WithTimeout(ctx, bulkQueryTimeout)
	defer cancel()

	if !req.Confirmar {
		total, sample, err := s.repo.CountByPeriod(boundedCtx, tenantID, start, end, ids)
		if err != nil {
			return DeletePreviewResponse{}, DeleteByPeriodResponse{}, mapPeriodError(err)
		}
		preview := DeletePreviewResponse{Total: total, Amostra: make([]RecordResponse, len(sample))}
		for i, row := range sample {
			preview.Amostra[i] = mapToResponse(row)
		}
		return preview, DeleteByPeriodResponse{}, nil
	}

	deleted, err := s.repo.DeleteByPeriod(boundedCtx, tenantID, start, end, ids)
	if err != nil {
		return DeletePreviewResponse{}, DeleteByPeriodResponse{}, mapPeriodError(err)
	}

	s.logger.Info("exclusão de ponto por período",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("excluidos", deleted),
	)
	return DeletePreviewResponse{}, DeleteByPeriodResponse{Excluidos: deleted}, nil
}

func validatePeriod(start, end time.Time) error {
	if end.Before(start) {
		return apperror.ErrInvalidPeriod
	}
	if end.Sub(start) > maxPeriodDays*24*time.Hour {
		return apperror.ErrInvalidPeriod
	}
	return nil
}

func mapPeriodError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.ErrTimeout
	}
	return err
}

func (s *service) queueRecordEvent(ctx context.Context, tx *sql.Tx, eventType string, rec *RegistroPonto) error {
	if s.outbox == nil {
		return nil
	}

	event := events.TimeRecordEvent{
		EventType:  eventType,
		RecordID:   rec.ID.String(),
		EmployeeID: rec.FuncionarioID.String(),
		TenantID:   rec.TenantID.String(),
		Date:       rec.Data.Format(DateLayout),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "registro_ponto",
		AggregateID:   rec.ID.String(),
		EventType:     eventType,
		Topic:         events.TimeRecordTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(r RegistroPonto) RecordResponse {
	resp := RecordResponse{
		ID:            r.ID.String(),
		FuncionarioID: r.FuncionarioID.String(),
		Data:          r.Data.Format(DateLayout),
		Tipo:          r.Tipo.String(),
		Entrada:       r.Entrada,
		SaidaAlmoco:   r.SaidaAlmoco,
		RetornoAlmoco: r.RetornoAlmoco,
		Saida:         r.Saida,

		HorasTrabalhadas:     r.HorasTrabalhadas,
		HorasExtras:          r.HorasExtras,
		PercentualExtras:     r.PercentualExtras,
		MinutosAtrasoEntrada: r.MinutosAtrasoEntrada,
		MinutosAtrasoSaida:   r.MinutosAtrasoSaida,
		TotalAtrasoMinutos:   r.TotalAtrasoMinutos,
		TotalAtrasoHoras:     r.TotalAtrasoHoras,

		Observacoes: r.Observacoes,
	}
	if r.ObraID != nil {
		v := r.ObraID.String()
		resp.ObraID = &v
	}
	return resp
}
