package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *Funcionario) error
	Update(ctx context.Context, f *Funcionario) error
	// FindByID busca sem filtro de tenant; o chamador decide entre NotFound e
	// OwnershipViolation via tenant.AssertOwned.
	FindByID(ctx context.Context, id uuid.UUID) (*Funcionario, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, onlyActive bool) ([]Funcionario, error)
	FindAllActive(ctx context.Context, tenantID *uuid.UUID) ([]Funcionario, error)
	HasTimeRecords(ctx context.Context, id uuid.UUID) (bool, error)
	ListPhotos(ctx context.Context, funcionarioID uuid.UUID) ([]FotoFacial, error)
	AddPhoto(ctx context.Context, p *FotoFacial) error
	DeletePhotos(ctx context.Context, tenantID, funcionarioID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, f *Funcionario) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) Update(ctx context.Context, f *Funcionario) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Funcionario, error) {
	var f Funcionario
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) FindAll(ctx context.Context, tenantID uuid.UUID, onlyActive bool) ([]Funcionario, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
	if onlyActive {
		q = q.Where("ativo = true")
	}

	var rows []Funcionario
	err := q.Order("nome ASC").Find(&rows).Error
	return rows, err
}

// FindAllActive atravessa todos os tenants quando tenantID é nil; usado
// apenas pela reconstrução do cache facial via CLI.
func (r *repository) FindAllActive(ctx context.Context, tenantID *uuid.UUID) ([]Funcionario, error) {
	q := r.db.WithContext(ctx).Where("ativo = true")
	if tenantID != nil {
		q = q.Scopes(tenant.Scope(*tenantID))
	}

	var rows []Funcionario
	err := q.Order("nome ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) HasTimeRecords(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("registro_ponto").
		Where("funcionario_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListPhotos(ctx context.Context, funcionarioID uuid.UUID) ([]FotoFacial, error) {
	var rows []FotoFacial
	err := r.db.WithContext(ctx).
		Where("funcionario_id = ? AND ativa = true", funcionarioID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AddPhoto(ctx context.Context, p *FotoFacial) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) DeletePhotos(ctx context.Context, tenantID, funcionarioID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("funcionario_id = ?", funcionarioID).
		Delete(&FotoFacial{}).Error
}
