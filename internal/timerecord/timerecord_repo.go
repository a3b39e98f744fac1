package timerecord

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

// ListFilters restringe a listagem de registros; todos os campos são
// opcionais, o tenant é sempre obrigatório e vem por fora.
type ListFilters struct {
	FuncionarioID *uuid.UUID
	ObraID        *uuid.UUID
	Tipo          *RecordType
	DataInicio    *time.Time
	DataFim       *time.Time
}

//go:generate mockgen -source=timerecord_repo.go -destination=mock/timerecord_repo_mock.go -package=mock

type Repository interface {
	Upsert(ctx context.Context, r *RegistroPonto) error
	// FindByID busca sem filtro de tenant; o chamador decide entre NotFound
	// e OwnershipViolation via tenant.AssertOwned.
	FindByID(ctx context.Context, id uuid.UUID) (*RegistroPonto, error)
	Get(ctx context.Context, tenantID, funcionarioID uuid.UUID, data time.Time) (*RegistroPonto, error)
	List(ctx context.Context, tenantID uuid.UUID, f ListFilters) ([]RegistroPonto, error)
	ListForPeriod(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]RegistroPonto, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteByPeriod(ctx context.Context, tenantID uuid.UUID, start, end time.Time, funcionarioIDs []uuid.UUID) (int64, error)
	CountByPeriod(ctx context.Context, tenantID uuid.UUID, start, end time.Time, funcionarioIDs []uuid.UUID) (int64, []RegistroPonto, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// colunas reescritas num upsert; id, tenant, funcionário e data ficam fixos
var upsertColumns = []string{
	"tipo", "entrada", "saida_almoco", "retorno_almoco", "saida",
	"horas_trabalhadas", "horas_extras", "percentual_extras",
	"minutos_atraso_entrada", "minutos_atraso_saida",
	"total_atraso_minutos", "total_atraso_horas",
	"obra_id", "observacoes", "updated_at",
}

func (r *repository) Upsert(ctx context.Context, rec *RegistroPonto) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "funcionario_id"}, {Name: "data"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*RegistroPonto, error) {
	var rec RegistroPonto
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Get(ctx context.Context, tenantID, funcionarioID uuid.UUID, data time.Time) (*RegistroPonto, error) {
	var rec RegistroPonto
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("funcionario_id = ? AND data = ?", funcionarioID, data).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, f ListFilters) ([]RegistroPonto, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if f.FuncionarioID != nil {
		q = q.Where("funcionario_id = ?", *f.FuncionarioID)
	}
	if f.ObraID != nil {
		q = q.Where("obra_id = ?", *f.ObraID)
	}
	if f.Tipo != nil {
		q = q.Where("tipo = ?", *f.Tipo)
	}
	if f.DataInicio != nil {
		q = q.Where("data >= ?", *f.DataInicio)
	}
	if f.DataFim != nil {
		q = q.Where("data <= ?", *f.DataFim)
	}

	var rows []RegistroPonto
	if err := q.Order("data ASC, funcionario_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListForPeriod(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]RegistroPonto, error) {
	var rows []RegistroPonto
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("funcionario_id = ? AND data BETWEEN ? AND ?", funcionarioID, start, end).
		Order("data ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&RegistroPonto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) periodQuery(ctx context.Context, tenantID uuid.UUID, start, end time.Time, funcionarioIDs []uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("data BETWEEN ? AND ?", start, end)
	if len(funcionarioIDs) > 0 {
		q = q.Where("funcionario_id IN ?", funcionarioIDs)
	}
	return q
}

func (r *repository) DeleteByPeriod(ctx context.Context, tenantID uuid.UUID, start, end time.Time, funcionarioIDs []uuid.UUID) (int64, error) {
	res := r.periodQuery(ctx, tenantID, start, end, funcionarioIDs).Delete(&RegistroPonto{})
	return res.RowsAffected, res.Error
}

// CountByPeriod alimenta a prévia da exclusão em massa: conta e devolve uma
// amostra sem tocar em nada.
func (r *repository) CountByPeriod(ctx context.Context, tenantID uuid.UUID, start, end time.Time, funcionarioIDs []uuid.UUID) (int64, []RegistroPonto, error) {
	var count int64
	if err := r.periodQuery(ctx, tenantID, start, end, funcionarioIDs).
		Model(&RegistroPonto{}).Count(&count).Error; err != nil {
		return 0, nil, err
	}

	var sample []RegistroPonto
	if err := r.periodQuery(ctx, tenantID, start, end, funcionarioIDs).
		Order("data ASC").Limit(10).Find(&sample).Error; err != nil {
		return 0, nil, err
	}
	return count, sample, nil
}
