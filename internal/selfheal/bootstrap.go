package selfheal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/adjustment"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/calendar"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/meal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/worksite"
)

// Status por tabela no resumo do bootstrap.
const (
	StatusAlreadyOK = "already_ok"
	StatusAdded     = "added"
	StatusFailed    = "failed"
)

// Summary é o resultado do reparo: status por tabela mais os totais.
type Summary struct {
	Tables    map[string]string
	AlreadyOK int
	Added     int
	Failed    int
}

// Bootstrapper reconcilia o esquema no arranque, antes de qualquer
// handler: cria tabelas, garante tenant_id NOT NULL em toda tabela
// operacional e preenche órfãos pela estratégia estática. É o único lugar
// do sistema que tolera esquema defasado; rodar duas vezes produz o mesmo
// estado que rodar uma.
type Bootstrapper struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBootstrapper(db *gorm.DB) *Bootstrapper {
	return &Bootstrapper{
		db:     db,
		logger: zap.L().Named("selfheal"),
	}
}

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id             uuid PRIMARY KEY,
    request_id     text,
    aggregate_type text NOT NULL,
    aggregate_id   text NOT NULL,
    event_type     text NOT NULL,
    topic          text NOT NULL,
    payload        jsonb NOT NULL,
    status         text NOT NULL DEFAULT 'pending',
    retry_count    int  NOT NULL DEFAULT 0,
    next_retry_at  timestamptz NOT NULL DEFAULT now(),
    created_at     timestamptz NOT NULL DEFAULT now(),
    updated_at     timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, next_retry_at);
`

// Run executa o reparo completo. Falhas por tabela não interrompem as
// demais; o resumo distingue already_ok, added e failed.
func (b *Bootstrapper) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Tables: map[string]string{}}

	if err := b.db.WithContext(ctx).AutoMigrate(
		&schedule.HorarioTrabalho{},
		&employee.Funcionario{},
		&employee.FotoFacial{},
		&worksite.Obra{},
		&calendar.Feriado{},
		&timerecord.RegistroPonto{},
		&adjustment.OutroCusto{},
		&meal.RegistroAlimentacao{},
	); err != nil {
		return summary, err
	}
	if err := b.db.WithContext(ctx).Exec(outboxTableDDL).Error; err != nil {
		return summary, err
	}

	for table := range strategies {
		status, err := b.healTable(ctx, table)
		summary.Tables[table] = status
		switch status {
		case StatusAlreadyOK:
			summary.AlreadyOK++
		case StatusAdded:
			summary.Added++
		case StatusFailed:
			summary.Failed++
			b.logger.Error("reparo de tenant falhou", zap.String("table", table), zap.Error(err))
		}
	}

	b.logger.Info("bootstrap concluído",
		zap.Int("already_ok", summary.AlreadyOK),
		zap.Int("added", summary.Added),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// healTable garante tenant_id NOT NULL numa tabela: adiciona a coluna como
// anulável, preenche pela estratégia, trava em NOT NULL e indexa.
func (b *Bootstrapper) healTable(ctx context.Context, table string) (string, error) {
	if IsGlobal(table) {
		return StatusAlreadyOK, nil
	}

	db := b.db.WithContext(ctx)

	hasColumn, notNull, err := b.columnState(ctx, table)
	if err != nil {
		return StatusFailed, err
	}
	if hasColumn && notNull {
		return StatusAlreadyOK, nil
	}

	if !hasColumn {
		if err := db.Exec(fmt.Sprintf(
			"ALTER TABLE %s ADD COLUMN IF NOT EXISTS tenant_id uuid", table)).Error; err != nil {
			return StatusFailed, err
		}
	}

	strategy, ok := StrategyFor(table)
	if !ok {
		return StatusFailed, fmt.Errorf("tabela %s sem estratégia de preenchimento", table)
	}
	if err := db.Exec(backfillSQL(table, strategy)).Error; err != nil {
		return StatusFailed, err
	}

	// linhas ainda órfãs depois do preenchimento impedem o NOT NULL; isso
	// é sinal de dado irreparável e fica para inspeção manual
	var orphans int64
	if err := db.Raw(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE tenant_id IS NULL", table)).Scan(&orphans).Error; err != nil {
		return StatusFailed, err
	}
	if orphans > 0 {
		return StatusFailed, fmt.Errorf("%d linhas de %s sem tenant resolvível", orphans, table)
	}

	if err := db.Exec(fmt.Sprintf(
		"ALTER TABLE %s ALTER COLUMN tenant_id SET NOT NULL", table)).Error; err != nil {
		return StatusFailed, err
	}
	if err := db.Exec(fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS idx_%s_tenant ON %s (tenant_id)", table, table)).Error; err != nil {
		return StatusFailed, err
	}

	return StatusAdded, nil
}

func (b *Bootstrapper) columnState(ctx context.Context, table string) (exists bool, notNull bool, err error) {
	var nullable string
	err = b.db.WithContext(ctx).Raw(`
        SELECT is_nullable FROM information_schema.columns
        WHERE table_name = ? AND column_name = 'tenant_id'`, table).Scan(&nullable).Error
	if err != nil {
		return false, false, err
	}
	if nullable == "" {
		return false, false, nil
	}
	return true, nullable == "NO", nil
}

func backfillSQL(table string, s Strategy) string {
	switch s.Kind {
	case BackfillJoin:
		return fmt.Sprintf(
			"UPDATE %s t SET tenant_id = p.tenant_id FROM %s p WHERE t.%s = p.%s AND t.tenant_id IS NULL",
			table, s.ParentTable, s.LocalKey, s.ParentKey)
	default:
		return fmt.Sprintf(
			"UPDATE %s SET tenant_id = (SELECT tenant_id FROM %s WHERE tenant_id IS NOT NULL GROUP BY tenant_id ORDER BY COUNT(*) DESC LIMIT 1) WHERE tenant_id IS NULL",
			table, s.ModeSource)
	}
}
