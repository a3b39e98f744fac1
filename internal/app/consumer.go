package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/events"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/facecache"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/messaging/kafka/consumer"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/connection"
)

// RunConsumer liga os dois consumidores: invalidação de cache de KPI a cada
// escrita de ponto e atualização do arquivo de embeddings a cada evento de
// foto. Cada um tem o próprio grupo e reader.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")
	cfg := ConfigFromEnv()

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER é obrigatório")
	}

	employeeRepo := employee.NewRepository(gormDB)
	faceStore := facecache.NewStore(cfg.FaceCacheDir)
	faceProvider := facecache.NewHTTPProvider(cfg.FaceEmbedURL)
	facecacheService := facecache.NewService(faceStore, faceProvider, employeeRepo)

	timerecordReader := connection.NewKafkaReader(kafkaBroker, events.TimeRecordTopic, "sige-kpi-invalidator")
	defer timerecordReader.Close()

	faceReader := connection.NewKafkaReader(kafkaBroker, events.EmployeeFaceTopic, "sige-face-refresher")
	defer faceReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeTimeRecordEvents(ctx, timerecordReader, rdb, logger)
	go consumer.ConsumeEmployeeFaceEvents(ctx, faceReader, facecacheService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumidores encerrando")
	cancel()

	return nil
}
