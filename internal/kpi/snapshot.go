package kpi

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/adjustment"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/meal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
)

// Snapshot é o recorte consistente do período: ponto, ajustes, alimentação
// e feriados lidos numa única transação de leitura.
type Snapshot struct {
	Records     []timerecord.RegistroPonto
	Adjustments []adjustment.OutroCusto
	Meals       []meal.RegistroAlimentacao
	Holidays    calendar.HolidaySet
}

//go:generate mockgen -source=snapshot.go -destination=mock/snapshot_mock.go -package=mock

type SnapshotReader interface {
	ReadPeriod(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) (Snapshot, error)
}

type gormSnapshotReader struct {
	db *gorm.DB
}

func NewSnapshotReader(db *gorm.DB) SnapshotReader {
	return &gormSnapshotReader{db: db}
}

// ReadPeriod lê as quatro fontes sob repeatable read; o agregador nunca vê
// uma escrita concorrente pela metade.
func (r *gormSnapshotReader) ReadPeriod(ctx context.Context, tenantID, funcionarioID uuid.UUID, start, end time.Time) (Snapshot, error) {
	var snap Snapshot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Records, err = timerecord.NewRepository(tx).ListForPeriod(ctx, tenantID, funcionarioID, start, end); err != nil {
			return err
		}
		if snap.Adjustments, err = adjustment.NewRepository(tx).ListByEmployee(ctx, tenantID, funcionarioID, start, end); err != nil {
			return err
		}
		if snap.Meals, err = meal.NewRepository(tx).ListByEmployee(ctx, tenantID, funcionarioID, start, end); err != nil {
			return err
		}
		snap.Holidays, err = calendar.NewHolidayRepository(tx).ListBetween(ctx, tenantID, start, end)
		return err
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})

	return snap, err
}
