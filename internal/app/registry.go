package app

import (
	"database/sql"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/adjustment"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/bulkentry"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/employee"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/facecache"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/kpi"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/meal"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/messaging/kafka"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/middleware"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/rbac/infra"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/schedule"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/timerecord"
	"github.com/cassioviller/EnterpriseSync-1-sub000/internal/worksite"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	worksiteRepo := worksite.NewRepository(gormDB)
	timerecordRepo := timerecord.NewRepository(gormDB)
	adjustmentRepo := adjustment.NewRepository(gormDB)
	mealRepo := meal.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	scheduleService := schedule.NewService(scheduleRepo)
	worksiteService := worksite.NewService(worksiteRepo)
	timerecordService := timerecord.NewService(db, timerecordRepo, employeeRepo, scheduleRepo, worksiteRepo, outboxRepo)
	adjustmentService := adjustment.NewService(adjustmentRepo, employeeRepo)
	mealService := meal.NewService(mealRepo, employeeRepo)
	kpiService := kpi.NewService(
		kpi.NewSnapshotReader(gormDB),
		employeeRepo,
		scheduleRepo,
		rdb,
		cfg.ForceRateFallback,
	)
	bulkentryService := bulkentry.NewService(timerecordService, timerecordRepo, employeeRepo, scheduleRepo)

	faceStore := facecache.NewStore(cfg.FaceCacheDir)
	faceProvider := facecache.NewHTTPProvider(cfg.FaceEmbedURL)
	facecacheService := facecache.NewService(faceStore, faceProvider, employeeRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	scheduleHandler := schedule.NewHandler(scheduleService)
	worksiteHandler := worksite.NewHandler(worksiteService)
	timerecordHandler := timerecord.NewHandler(timerecordService)
	adjustmentHandler := adjustment.NewHandler(adjustmentService)
	mealHandler := meal.NewHandler(mealService)
	kpiHandler := kpi.NewHandler(kpiService)
	bulkentryHandler := bulkentry.NewHandler(bulkentryService)
	facecacheHandler := facecache.NewHandler(facecacheService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		worksite.RegisterRoutes(api, worksiteHandler, rbacService)
		timerecord.RegisterRoutes(api, timerecordHandler, rbacService)
		adjustment.RegisterRoutes(api, adjustmentHandler, rbacService)
		meal.RegisterRoutes(api, mealHandler, rbacService)
		kpi.RegisterRoutes(api, kpiHandler, rbacService)
		bulkentry.RegisterRoutes(api, bulkentryHandler, rbacService)
		facecache.RegisterRoutes(api, facecacheHandler, rbacService)
	}

	return nil
}
