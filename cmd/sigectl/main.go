package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/app"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/facecache"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/kpi"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/selfheal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/apperror"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/shared/connection"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/tenant"
)

// Códigos de saída: 0 tudo certo, 1 concluído com pendências, 2 falha fatal.
const (
	exitOK      = 0
	exitPartial = 1
	exitFatal   = 2
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if len(os.Args) < 2 {
		usage()
		os.Exit(exitFatal)
	}

	var code int
	switch os.Args[1] {
	case "bootstrap":
		code = runBootstrap()
	case "rebuild-face-cache":
		code = runRebuildFaceCache(os.Args[2:])
	case "recalc-kpis":
		code = runRecalcKPIs(os.Args[2:])
	default:
		usage()
		code = exitFatal
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: sigectl <bootstrap | rebuild-face-cache [--tenant ID] | recalc-kpis --tenant ID --month AAAA-MM>")
}

func connectDB() (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
}

func runBootstrap() int {
	gormDB, err := connectDB()
	if err != nil {
		zap.L().Error("conexão com o banco falhou", zap.Error(err))
		return exitFatal
	}

	summary, err := selfheal.NewBootstrapper(gormDB).Run(context.Background())
	if err != nil {
		zap.L().Error("autocura de esquema falhou", zap.Error(err))
		return exitFatal
	}

	code := exitOK
	for table, status := range summary.Tables {
		fmt.Printf("%-32s %s\n", table, status)
		if status == selfheal.StatusFailed {
			code = exitPartial
		}
	}
	return code
}

func runRebuildFaceCache(args []string) int {
	fs := flag.NewFlagSet("rebuild-face-cache", flag.ExitOnError)
	tenantFlag := fs.String("tenant", "", "reconstrói somente a partição deste tenant")
	_ = fs.Parse(args)

	var tenantID *uuid.UUID
	if *tenantFlag != "" {
		id, err := uuid.Parse(*tenantFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, "--tenant inválido:", *tenantFlag)
			return exitFatal
		}
		tenantID = &id
	}

	gormDB, err := connectDB()
	if err != nil {
		zap.L().Error("conexão com o banco falhou", zap.Error(err))
		return exitFatal
	}

	cfg := app.ConfigFromEnv()
	faces := facecache.NewService(
		facecache.NewStore(cfg.FaceCacheDir),
		facecache.NewHTTPProvider(cfg.FaceEmbedURL),
		employee.NewRepository(gormDB),
	)

	stats, err := faces.Rebuild(context.Background(), tenantID)
	if err != nil {
		zap.L().Error("reconstrução do cache facial falhou", zap.Error(err))
		return exitFatal
	}

	fmt.Printf("funcionarios=%d embeddings=%d imagens_com_falha=%d descartados=%d\n",
		stats.Funcionarios, stats.Embeddings, stats.ImagensComFalha, stats.Descartados)
	if stats.ImagensComFalha > 0 {
		return exitPartial
	}
	return exitOK
}

func runRecalcKPIs(args []string) int {
	fs := flag.NewFlagSet("recalc-kpis", flag.ExitOnError)
	tenantFlag := fs.String("tenant", "", "tenant cujos KPIs serão recalculados")
	monthFlag := fs.String("month", "", "mês de referência no formato AAAA-MM")
	_ = fs.Parse(args)

	tenantID, err := uuid.Parse(*tenantFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "--tenant inválido:", *tenantFlag)
		return exitFatal
	}
	monthStart, err := time.Parse("2006-01", *monthFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "--month inválido:", *monthFlag)
		return exitFatal
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	gormDB, err := connectDB()
	if err != nil {
		zap.L().Error("conexão com o banco falhou", zap.Error(err))
		return exitFatal
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		zap.L().Error("conexão com o redis falhou", zap.Error(err))
		return exitFatal
	}

	cfg := app.ConfigFromEnv()
	employeeRepo := employee.NewRepository(gormDB)
	kpiService := kpi.NewService(
		kpi.NewSnapshotReader(gormDB),
		employeeRepo,
		schedule.NewRepository(gormDB),
		rdb,
		cfg.ForceRateFallback,
	)

	ctx := context.Background()
	funcionarios, err := employeeRepo.FindAll(ctx, tenantID, true)
	if err != nil {
		zap.L().Error("listagem de funcionários falhou", zap.Error(err))
		return exitFatal
	}

	actor := tenant.Actor{ID: tenantID, TenantID: tenantID, Role: tenant.RoleAdmin}
	failures := 0
	for i := range funcionarios {
		req := kpi.ComputeKPIRequest{
			FuncionarioID: funcionarios[i].ID.String(),
			DataInicio:    monthStart.Format("2006-01-02"),
			DataFim:       monthEnd.Format("2006-01-02"),
		}
		if _, err := kpiService.Compute(ctx, actor, req); err != nil {
			failures++
			zap.L().Warn("recálculo de KPI falhou",
				zap.String("funcionario_id", req.FuncionarioID),
				zap.Error(err),
			)
		}
	}

	fmt.Printf("funcionarios=%d falhas=%d periodo=%s..%s\n",
		len(funcionarios), failures, monthStart.Format("2006-01-02"), monthEnd.Format("2006-01-02"))
	if failures > 0 {
		return exitPartial
	}
	return exitOK
}
