package consumer

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/kpi"
)

const invalidateScanCount = 100

// ConsumeTimeRecordEvents derruba o cache de KPIs do par (tenant, funcionário)
// a cada escrita ou exclusão de registro de ponto.
func ConsumeTimeRecordEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.kpi_invalidator")
	log.Info("consumidor de invalidação de KPI iniciado")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumidor de invalidação de KPI parado")
				return
			}
			log.Error("leitura de evento de ponto falhou", zap.Error(err))
			continue
		}

		var event events.TimeRecordEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("evento de ponto malformado", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := invalidateKPICache(ctx, rdb, event); err != nil {
			// Deixa sem commit para o grupo reentregar a mensagem.
			log.Error("invalidação de cache de KPI falhou",
				zap.String("tenant_id", event.TenantID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit de evento de ponto falhou", zap.Error(err))
		}
	}
}

// invalidateKPICache varre e remove toda entrada sob o prefixo do par,
// qualquer que seja o período cacheado.
func invalidateKPICache(ctx context.Context, rdb *redis.Client, event events.TimeRecordEvent) error {
	prefix := kpi.KeyPrefix(event.TenantID, event.EmployeeID)

	iter := rdb.Scan(ctx, 0, prefix+"*", invalidateScanCount).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
