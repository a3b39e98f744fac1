package adjustment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=adjustment_service.go -destination=mock/adjustment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor tenant.Actor, req UpsertAdjustmentRequest) (AdjustmentResponse, error)
	Update(ctx context.Context, actor tenant.Actor, id string, req UpsertAdjustmentRequest) (AdjustmentResponse, error)
	ListByEmployee(ctx context.Context, actor tenant.Actor, funcionarioID, dataInicio, dataFim string) ([]AdjustmentResponse, error)
	Delete(ctx context.Context, actor tenant.Actor, id string) error
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, employees employee.Repository) Service {
	return &service{
		repo:      repo,
		employees: employees,
		logger:    zap.L().Named("adjustment.service"),
	}
}

// parseRequest valida a submissão e aplica a normalização de sinal e a
// classificação de canal antes de qualquer escrita.
func (s *service) parseRequest(ctx context.Context, actor tenant.Actor, req UpsertAdjustmentRequest) (*OutroCusto, error) {
	funcID, err := uuid.Parse(req.FuncionarioID)
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

	data, err := time.Parse(dateLayout, req.Data)
	if err != nil {
		return nil, apperror.InvalidField("data")
	}

	valor, err := decimal.NewFromString(req.Valor)
	if err != nil {
		return nil, apperror.InvalidField("valor")
	}

	return &OutroCusto{
		TenantID:      emp.TenantID,
		FuncionarioID: emp.ID,
		Data:          data,
		Categoria:     req.Categoria,
		Valor:         NormalizeSign(req.Categoria, valor),
		Canal:         Channel(req.Categoria),
	}, nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req UpsertAdjustmentRequest) (AdjustmentResponse, error) {
	row, err := s.parseRequest(ctx, actor, req)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	row.ID = uuid.New()

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("gravação de ajuste falhou", zap.Error(err))
		return AdjustmentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor tenant.Actor, id string, req UpsertAdjustmentRequest) (AdjustmentResponse, error) {
	adjID, err := uuid.Parse(id)
	if err != nil {
		return AdjustmentResponse{}, apperror.InvalidField("id")
	}

	existing, err := s.repo.FindByID(ctx, adjID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdjustmentResponse{}, apperror.ErrNotFound
		}
		return AdjustmentResponse{}, err
	}
	if err := tenant.AssertOwned(existing, actor.ResolveTenant()); err != nil {
		return AdjustmentResponse{}, err
	}

	row, err := s.parseRequest(ctx, actor, req)
	if err != nil {
		return AdjustmentResponse{}, err
	}
	row.ID = existing.ID

	if err := s.repo.Update(ctx, row); err != nil {
		return AdjustmentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListByEmployee(ctx context.Context, actor tenant.Actor, funcionarioID, dataInicio, dataFim string) ([]AdjustmentResponse, error) {
	funcID, err := uuid.Parse(funcionarioID)
	if err != nil {
		return nil, apperror.InvalidField("funcionario_id")
	}

	start, err := time.Parse(dateLayout, dataInicio)
	if err != nil {
		return nil, apperror.InvalidField("data_inicio")
	}
	end, err := time.Parse(dateLayout, dataFim)
	if err != nil {
		return nil, apperror.InvalidField("data_fim")
	}
	if end.Before(start) {
		return nil, apperror.ErrInvalidPeriod
	}

	rows, err := s.repo.ListByEmployee(ctx, actor.ResolveTenant(), funcID, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]AdjustmentResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, actor tenant.Actor, id string) error {
	adjID, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidField("id")
	}

	existing, err := s.repo.FindByID(ctx, adjID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if err := tenant.AssertOwned(existing, actor.ResolveTenant()); err != nil {
		return err
	}

	return s.repo.Delete(ctx, existing.TenantID, existing.ID)
}

func mapToResponse(o OutroCusto) AdjustmentResponse {
	return AdjustmentResponse{
		ID:            o.ID.String(),
		FuncionarioID: o.FuncionarioID.String(),
		Data:          o.Data.Format(dateLayout),
		Categoria:     o.Categoria,
		Valor:         o.Valor.StringFixed(2),
		Canal:         o.Canal,
	}
}
