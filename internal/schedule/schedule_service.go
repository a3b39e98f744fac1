package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor tenant.Actor, req UpsertScheduleRequest) (ScheduleResponse, error)
	Update(ctx context.Context, actor tenant.Actor, id string, req UpsertScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, actor tenant.Actor, id string) error
	GetAll(ctx context.Context, actor tenant.Actor) ([]ScheduleResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRequest(req UpsertScheduleRequest) error {
	for _, clock := range []string{req.Entrada, req.SaidaAlmoco, req.RetornoAlmoco, req.Saida} {
		if _, err := calendar.ParseClock(clock); err != nil {
			return apperror.Wrap(err, apperror.CodeInvalidInput, "horário planejado inválido", 400)
		}
	}
	if req.HorasDiarias <= 0 || req.HorasDiarias > 12 {
		return apperror.New(apperror.CodeInvalidInput, "horas diárias devem estar entre 0 e 12", 400)
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req UpsertScheduleRequest) (ScheduleResponse, error) {
	if err := validateRequest(req); err != nil {
		return ScheduleResponse{}, err
	}

	dias := req.DiasSemana
	if dias == 0 {
		dias = SegASex
	}

	row := &HorarioTrabalho{
		ID:            uuid.New(),
		TenantID:      actor.ResolveTenant(),
		Nome:          req.Nome,
		Entrada:       req.Entrada,
		SaidaAlmoco:   req.SaidaAlmoco,
		RetornoAlmoco: req.RetornoAlmoco,
		Saida:         req.Saida,
		DiasSemana:    dias,
		HorasDiarias:  req.HorasDiarias,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return ScheduleResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor tenant.Actor, id string, req UpsertScheduleRequest) (ScheduleResponse, error) {
	if err := validateRequest(req); err != nil {
		return ScheduleResponse{}, err
	}
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return ScheduleResponse{}, apperror.ErrInvalidInput
	}

	row, err := s.repo.FindByID(ctx, actor.ResolveTenant(), scheduleID)
	if err != nil {
		return ScheduleResponse{}, err
	}

	row.Nome = req.Nome
	row.Entrada = req.Entrada
	row.SaidaAlmoco = req.SaidaAlmoco
	row.RetornoAlmoco = req.RetornoAlmoco
	row.Saida = req.Saida
	if req.DiasSemana != 0 {
		row.DiasSemana = req.DiasSemana
	}
	row.HorasDiarias = req.HorasDiarias

	if err := s.repo.Update(ctx, row); err != nil {
		return ScheduleResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, actor tenant.Actor, id string) error {
	scheduleID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrInvalidInput
	}
	return s.repo.Delete(ctx, actor.ResolveTenant(), scheduleID)
}

func (s *service) GetAll(ctx context.Context, actor tenant.Actor) ([]ScheduleResponse, error) {
	rows, err := s.repo.FindAll(ctx, actor.ResolveTenant())
	if err != nil {
		return nil, err
	}
	res := make([]ScheduleResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func mapToResponse(h HorarioTrabalho) ScheduleResponse {
	return ScheduleResponse{
		ID:            h.ID.String(),
		Nome:          h.Nome,
		Entrada:       h.Entrada,
		SaidaAlmoco:   h.SaidaAlmoco,
		RetornoAlmoco: h.RetornoAlmoco,
		Saida:         h.Saida,
		DiasSemana:    h.DiasSemana,
		HorasDiarias:  h.HorasDiarias,
	}
}
