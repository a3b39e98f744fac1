package app

import (
	"context"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/selfheal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/connection"
)

// Config agrupa o que vem do ambiente além das conexões.
type Config struct {
	FaceCacheDir      string
	FaceEmbedURL      string
	ForceRateFallback bool
}

func ConfigFromEnv() Config {
	faceDir := os.Getenv("FACE_CACHE_DIR")
	if faceDir == "" {
		faceDir = "."
	}
	force, _ := strconv.ParseBool(os.Getenv("FORCE_RATE_FALLBACK"))
	return Config{
		FaceCacheDir:      faceDir,
		FaceEmbedURL:      os.Getenv("FACE_EMBED_URL"),
		ForceRateFallback: force,
	}
}

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// Passada de autocura do esquema antes de aceitar tráfego. Tabelas com
	// órfãos ficam como failed no sumário e seguem NULLABLE, sem derrubar a
	// subida do processo.
	summary, err := selfheal.NewBootstrapper(gormDB).Run(context.Background())
	if err != nil {
		return err
	}
	for table, status := range summary.Tables {
		if status == selfheal.StatusFailed {
			logger.Warn("autocura de esquema incompleta", zap.String("table", table))
		}
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimit(50, 100))

	return registerModules(router, sqlDB, gormDB, rdb, ConfigFromEnv())
}
