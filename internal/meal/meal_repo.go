package meal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=meal_repo.go -destination=mock/meal_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, m *RegistroAlimentacao) error
	Update(ctx context.Context, m *RegistroAlimentacao) error
	FindByID(ctx context.Context, id uuid.UUID) (*RegistroAlimentacao, error)
	ListByEmployee(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]RegistroAlimentacao, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *RegistroAlimentacao) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, m *RegistroAlimentacao) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(m.TenantID)).
		Where("id = ?", m.ID).
		Select("data", "restaurante_id", "obra_id", "tipo_refeicao", "valor", "updated_at").
		Updates(m).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*RegistroAlimentacao, error) {
	var row RegistroAlimentacao
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListByEmployee(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) ([]RegistroAlimentacao, error) {
	var rows []RegistroAlimentacao
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
		Delete(&RegistroAlimentacao{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
