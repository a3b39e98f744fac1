package worksite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=worksite_service.go -destination=mock/worksite_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor tenant.Actor, req UpsertWorksiteRequest) (WorksiteResponse, error)
	Update(ctx context.Context, actor tenant.Actor, id string, req UpsertWorksiteRequest) (WorksiteResponse, error)
	GetAll(ctx context.Context, actor tenant.Actor, status string) ([]WorksiteResponse, error)
	GetByID(ctx context.Context, actor tenant.Actor, id string) (WorksiteResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseRequest(req UpsertWorksiteRequest, row *Obra) error {
	status := req.Status
	if status == "" {
		status = StatusPlanejada
	}
	if !ValidStatus(status) {
		return apperror.New(apperror.CodeInvalidInput, "status de obra inválido", 400)
	}
	row.Status = status

	if req.Orcamento != "" {
		orcamento, err := decimal.NewFromString(req.Orcamento)
		if err != nil || orcamento.IsNegative() {
			return apperror.New(apperror.CodeInvalidInput, "orçamento inválido", 400)
		}
		row.Orcamento = orcamento
	}

	if req.DataInicio != nil {
		d, err := time.Parse("2006-01-02", *req.DataInicio)
		if err != nil {
			return apperror.ErrInvalidInput
		}
		row.DataInicio = &d
	}
	if req.DataPrevistaFim != nil {
		d, err := time.Parse("2006-01-02", *req.DataPrevistaFim)
		if err != nil {
			return apperror.ErrInvalidInput
		}
		row.DataPrevistaFim = &d
	}

	row.Codigo = req.Codigo
	row.Nome = req.Nome
	return nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req UpsertWorksiteRequest) (WorksiteResponse, error) {
	row := &Obra{
		ID:       uuid.New(),
		TenantID: actor.ResolveTenant(),
	}
	if err := parseRequest(req, row); err != nil {
		return WorksiteResponse{}, err
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return WorksiteResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor tenant.Actor, id string, req UpsertWorksiteRequest) (WorksiteResponse, error) {
	obraID, err := uuid.Parse(id)
	if err != nil {
		return WorksiteResponse{}, apperror.ErrInvalidInput
	}

	row, err := s.repo.FindByID(ctx, actor.ResolveTenant(), obraID)
	if err != nil {
		return WorksiteResponse{}, err
	}
	if err := parseRequest(req, row); err != nil {
		return WorksiteResponse{}, err
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return WorksiteResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor tenant.Actor, status string) ([]WorksiteResponse, error) {
	if status != "" && !ValidStatus(status) {
		return nil, apperror.New(apperror.CodeInvalidInput, "status de obra inválido", 400)
	}

	rows, err := s.repo.FindAll(ctx, actor.ResolveTenant(), status)
	if err != nil {
		return nil, err
	}
	res := make([]WorksiteResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, actor tenant.Actor, id string) (WorksiteResponse, error) {
	obraID, err := uuid.Parse(id)
	if err != nil {
		return WorksiteResponse{}, apperror.ErrInvalidInput
	}

	row, err := s.repo.FindByID(ctx, actor.ResolveTenant(), obraID)
	if err != nil {
		return WorksiteResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(o Obra) WorksiteResponse {
	resp := WorksiteResponse{
		ID:        o.ID.String(),
		Codigo:    o.Codigo,
		Nome:      o.Nome,
		Status:    o.Status,
		Orcamento: o.Orcamento.StringFixed(2),
	}
	if o.DataInicio != nil {
		v := o.DataInicio.Format("2006-01-02")
		resp.DataInicio = &v
	}
	if o.DataPrevistaFim != nil {
		v := o.DataPrevistaFim.Format("2006-01-02")
		resp.DataPrevistaFim = &v
	}
	return resp
}
