package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type HolidayRepository interface {
	ListBetween(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (HolidaySet, error)
	Upsert(ctx context.Context, f *Feriado) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type holidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) ListBetween(ctx context.Context, tenantID uuid.UUID, start, end time.Time) (HolidaySet, error) {
	var rows []Feriado
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("data BETWEEN ? AND ?", start.Format(civilDate), end.Format(civilDate)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	set := make(HolidaySet, len(rows))
	for _, row := range rows {
		set.Add(row.Data)
	}
	return set, nil
}

func (r *holidayRepository) Upsert(ctx context.Context, f *Feriado) error {
	existing := Feriado{}
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(f.TenantID)).
		Where("data = ?", f.Data.Format(civilDate)).
		First(&existing).Error
	if err == nil {
		f.ID = existing.ID
		return r.db.WithContext(ctx).Save(f).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *holidayRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Feriado{}, "id = ?", id).Error
}
