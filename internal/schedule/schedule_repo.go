package schedule

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, h *HorarioTrabalho) error
	Update(ctx context.Context, h *HorarioTrabalho) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*HorarioTrabalho, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]HorarioTrabalho, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, h *HorarioTrabalho) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) Update(ctx context.Context, h *HorarioTrabalho) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&HorarioTrabalho{}, "id = ?", id).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*HorarioTrabalho, error) {
	var h HorarioTrabalho
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]HorarioTrabalho, error) {
	var rows []HorarioTrabalho
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Order("nome ASC").
		Find(&rows).Error
	return rows, err
}
