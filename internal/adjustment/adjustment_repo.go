package adjustment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=adjustment_repo.go -destination=mock/adjustment_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, o *OutroCusto) error
	Update(ctx context.Context, o *OutroCusto) error
	// FindByID busca sem filtro de tenant para o chamador distinguir
	// NotFound de OwnershipViolation.
	FindByID(ctx context.Context, id uuid.UUID) (*OutroCusto, error)
	ListByEmployee(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]OutroCusto, error)
	List(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]OutroCusto, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *OutroCusto) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) Update(ctx context.Context, o *OutroCusto) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(o.TenantID)).
		Where("id = ?", o.ID).
		Select("data", "categoria", "valor", "canal", "updated_at").
		Updates(o).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*OutroCusto, error) {
	var row OutroCusto
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListByEmployee(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]OutroCusto, error) {
	var rows []OutroCusto
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

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]OutroCusto, error) {
	var rows []OutroCusto
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("data BETWEEN ? AND ?", start, end).
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
		Delete(&OutroCusto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
