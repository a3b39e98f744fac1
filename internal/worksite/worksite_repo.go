package worksite

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=worksite_repo.go -destination=mock/worksite_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, o *Obra) error
	Update(ctx context.Context, o *Obra) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Obra, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, status string) ([]Obra, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Obra) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) Update(ctx context.Context, o *Obra) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Obra, error) {
	var o Obra
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) FindAll(ctx context.Context, tenantID uuid.UUID, status string) ([]Obra, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []Obra
	err := q.Order("codigo ASC").Find(&rows).Error
	return rows, err
}
