package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	employeeerrors "github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee/errors"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/messaging/kafka"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/contextutil"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

const OptionsKeyPrefix = "funcionarios:options:"

func GetOptionsKey(tenantID string) string {
	return OptionsKeyPrefix + tenantID
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor tenant.Actor, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, actor tenant.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, actor tenant.Actor, onlyActive bool) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, actor tenant.Actor) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actor tenant.Actor, id string) (EmployeeResponse, error)
	AddPhoto(ctx context.Context, actor tenant.Actor, id string, req AddPhotoRequest) error
	DeletePhotos(ctx context.Context, actor tenant.Actor, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("employee.service"),
	}
}

// resolveOwned busca o funcionário e distingue NotFound (não existe) de
// OwnershipViolation (existe noutra partição) antes de ler qualquer registro.
func (s *service) resolveOwned(ctx context.Context, actor tenant.Actor, id string) (*Funcionario, error) {
	funcID, err := uuid.Parse(id)
	if err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByID(ctx, funcID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if err := tenant.AssertOwned(row, actor.ResolveTenant()); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, actor tenant.Actor, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	salario, err := decimal.NewFromString(req.Salario)
	if err != nil || !salario.IsPositive() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	row := &Funcionario{
		ID:       uuid.New(),
		TenantID: actor.ResolveTenant(),
		Codigo:   req.Codigo,
		Nome:     req.Nome,
		Salario:  salario,
		Ativo:    true,
	}
	if req.HorarioTrabalhoID != nil {
		horarioID, err := uuid.Parse(*req.HorarioTrabalhoID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		row.HorarioTrabalhoID = &horarioID
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, row.TenantID.String())
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", row.ID.String()),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor tenant.Actor, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	row, err := s.resolveOwned(ctx, actor, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	deactivated := false
	if req.Nome != nil {
		row.Nome = *req.Nome
	}
	if req.Salario != nil {
		salario, err := decimal.NewFromString(*req.Salario)
		if err != nil || !salario.IsPositive() {
			return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
		}
		row.Salario = salario
	}
	if req.HorarioTrabalhoID != nil {
		horarioID, err := uuid.Parse(*req.HorarioTrabalhoID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
		}
		row.HorarioTrabalhoID = &horarioID
	}
	if req.Ativo != nil {
		deactivated = row.Ativo && !*req.Ativo
		row.Ativo = *req.Ativo
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.Update(ctx, row); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// desativação remove o funcionário do cache facial
	if deactivated {
		if err := s.queueFaceEvent(ctx, tx, events.FaceRemoved, row); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, row.TenantID.String())
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, actor tenant.Actor, onlyActive bool) ([]EmployeeResponse, error) {
	rows, err := s.repo.FindAll(ctx, actor.ResolveTenant(), onlyActive)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

// GetOptions serve os dropdowns de lançamento; cacheado porque é o endpoint
// mais batido quando o administrador abre a tela de ponto.
func (s *service) GetOptions(ctx context.Context, actor tenant.Actor) ([]EmployeeResponse, error) {
	tenantID := actor.ResolveTenant()
	cacheKey := GetOptionsKey(tenantID.String())

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAll(ctx, tenantID, true)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(rows)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, actor tenant.Actor, id string) (EmployeeResponse, error) {
	row, err := s.resolveOwned(ctx, actor, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) AddPhoto(ctx context.Context, actor tenant.Actor, id string, req AddPhotoRequest) error {
	row, err := s.resolveOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	photo := &FotoFacial{
		ID:            uuid.New(),
		TenantID:      row.TenantID,
		FuncionarioID: row.ID,
		Conteudo:      []byte(req.ConteudoBase64),
		Descricao:     req.Descricao,
		Ativa:         true,
	}
	if err := s.repo.AddPhoto(ctx, photo); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.queueFaceEvent(ctx, tx, events.FaceUpdated, row); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) DeletePhotos(ctx context.Context, actor tenant.Actor, id string) error {
	row, err := s.resolveOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.DeletePhotos(ctx, row.TenantID, row.ID); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.queueFaceEvent(ctx, tx, events.FaceRemoved, row); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) queueFaceEvent(ctx context.Context, tx *sql.Tx, eventType string, row *Funcionario) error {
	if s.outbox == nil {
		return nil
	}

	event := events.EmployeeFaceEvent{
		EventType:  eventType,
		EmployeeID: row.ID.String(),
		TenantID:   row.TenantID.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "funcionario",
		AggregateID:   row.ID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeFaceTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptions(ctx context.Context, tenantID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, GetOptionsKey(tenantID)).Err(); err != nil {
		s.logger.Error("invalidate employee options cache failed",
			zap.Error(err),
			zap.String("tenant_id", tenantID),
		)
	}
}

func mapToResponse(f Funcionario) EmployeeResponse {
	resp := EmployeeResponse{
		ID:      f.ID.String(),
		Codigo:  f.Codigo,
		Nome:    f.Nome,
		Salario: f.Salario.StringFixed(2),
		Ativo:   f.Ativo,
	}
	if f.HorarioTrabalhoID != nil {
		v := f.HorarioTrabalhoID.String()
		resp.HorarioTrabalhoID = &v
	}
	return resp
}

func mapToListResponse(rows []Funcionario) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res
}
