package consumer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/facecache"
)

// ConsumeEmployeeFaceEvents mantém o arquivo de embeddings faciais em dia
// com os eventos de foto dos funcionários.
func ConsumeEmployeeFaceEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	faces facecache.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.face_refresher")
	log.Info("consumidor de cache facial iniciado")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumidor de cache facial parado")
				return
			}
			log.Error("leitura de evento de foto falhou", zap.Error(err))
			continue
		}

		var event events.EmployeeFaceEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("evento de foto malformado", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := applyFaceEvent(ctx, faces, event, log); err != nil {
			log.Error("atualização do cache facial falhou",
				zap.String("event_type", event.EventType),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit de evento de foto falhou", zap.Error(err))
		}
	}
}

func applyFaceEvent(ctx context.Context, faces facecache.Service, event events.EmployeeFaceEvent, log *zap.Logger) error {
	employeeID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		log.Warn("employee_id inválido no evento de foto",
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}

	switch event.EventType {
	case events.FaceUpdated:
		return faces.RefreshOne(ctx, employeeID)
	case events.FaceRemoved:
		return faces.Remove(ctx, employeeID)
	default:
		log.Warn("tipo de evento de foto desconhecido",
			zap.String("event_type", event.EventType),
		)
		return nil
	}
}
