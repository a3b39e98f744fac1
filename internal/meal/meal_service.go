package meal

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

//go:generate mockgen -source=meal_service.go -destination=mock/meal_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor tenant.Actor, req UpsertMealRequest) (MealResponse, error)
	Update(ctx context.Context, actor tenant.Actor, id string, req UpsertMealRequest) (MealResponse, error)
	ListByEmployee(ctx context.Context, actor tenant.Actor, funcionarioID, dataInicio, dataFim string) ([]MealResponse, error)
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
		logger:    zap.L().Named("meal.service"),
	}
}

func (s *service) parseRequest(ctx context.Context, actor tenant.Actor, req UpsertMealRequest) (*RegistroAlimentacao, error) {
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
	if err != nil || !valor.IsPositive() {
		return nil, apperror.InvalidField("valor")
	}

	row := &RegistroAlimentacao{
		TenantID:      emp.TenantID,
		FuncionarioID: emp.ID,
		Data:          data,
		TipoRefeicao:  req.TipoRefeicao,
		Valor:         valor,
	}
	if req.RestauranteID != nil && *req.RestauranteID != "" {
		id, err := uuid.Parse(*req.RestauranteID)
		if err != nil {
			return nil, apperror.InvalidField("restaurante_id")
		}
		row.RestauranteID = &id
	}
	if req.ObraID != nil && *req.ObraID != "" {
		id, err := uuid.Parse(*req.ObraID)
		if err != nil {
			return nil, apperror.InvalidField("obra_id")
		}
		row.ObraID = &id
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req UpsertMealRequest) (MealResponse, error) {
	row, err := s.parseRequest(ctx, actor, req)
	if err != nil {
		return MealResponse{}, err
	}
	row.ID = uuid.New()

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("gravação de alimentação falhou", zap.Error(err))
		return MealResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor tenant.Actor, id string, req UpsertMealRequest) (MealResponse, error) {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return MealResponse{}, apperror.InvalidField("id")
	}

	existing, err := s.repo.FindByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MealResponse{}, apperror.ErrNotFound
		}
		return MealResponse{}, err
	}
	if err := tenant.AssertOwned(existing, actor.ResolveTenant()); err != nil {
		return MealResponse{}, err
	}

	row, err := s.parseRequest(ctx, actor, req)
	if err != nil {
		return MealResponse{}, err
	}
	row.ID = existing.ID

	if err := s.repo.Update(ctx, row); err != nil {
		return MealResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ListByEmployee(ctx context.Context, actor tenant.Actor, funcionarioID, dataInicio, dataFim string) ([]MealResponse, error) {
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

	res := make([]MealResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res, nil
}

func (s *service) Delete(ctx context.Context, actor tenant.Actor, id string) error {
	mealID, err := uuid.Parse(id)
	if err != nil {
		return apperror.InvalidField("id")
	}

	existing, err := s.repo.FindByID(ctx, mealID)
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

func mapToResponse(m RegistroAlimentacao) MealResponse {
	resp := MealResponse{
		ID:            m.ID.String(),
		FuncionarioID: m.FuncionarioID.String(),
		Data:          m.Data.Format(dateLayout),
		TipoRefeicao:  m.TipoRefeicao,
		Valor:         m.Valor.StringFixed(2),
	}
	if m.RestauranteID != nil {
		v := m.RestauranteID.String()
		resp.RestauranteID = &v
	}
	if m.ObraID != nil {
		v := m.ObraID.String()
		resp.ObraID = &v
	}
	return resp
}
