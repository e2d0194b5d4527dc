package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-hradmin/internal/accessrequest"
	"go-hradmin/internal/approval"
	"go-hradmin/internal/identity"
	"go-hradmin/internal/messaging/kafka"
	"go-hradmin/internal/notification"
	"go-hradmin/internal/rbac"
	"go-hradmin/internal/rbac/infra"
	"go-hradmin/internal/roles"
	"go-hradmin/internal/shared/counter"
	"go-hradmin/internal/takeonsheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	accessRequestRepo := accessrequest.NewRepository(gormDB)
	takeOnSheetRepo := takeonsheet.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	sagaRepo := approval.NewSagaRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	profileStore := identity.NewProfileStore(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)

	// --- Static role table ---
	roleTable := roles.NewTable()

	// --- External identity provider ---
	identityProvider := identity.NewHTTPProvider(os.Getenv("IDENTITY_BASE_URL"), logger)

	// --- Services ---
	takeOnSheetService := takeonsheet.NewServiceWithOutbox(db, takeOnSheetRepo, counterRepo, roleTable, rdb, outboxRepo, logger)
	accessRequestService := accessrequest.NewService(db, accessRequestRepo, takeOnSheetRepo, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	approvalService := approval.NewService(
		accessRequestService,
		accessRequestRepo,
		takeOnSheetRepo,
		sagaRepo,
		identityProvider,
		profileStore,
		outboxRepo,
		logger,
	)

	// --- Handlers ---
	accessRequestHandler := accessrequest.NewHandler(accessRequestService, logger)
	takeOnSheetHandler := takeonsheet.NewHandler(takeOnSheetService, logger)
	approvalHandler := approval.NewHandlerWithRedis(approvalService, rdb, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		accessrequest.RegisterRoutes(api, accessRequestHandler, rbacService, logger)
		approval.RegisterRoutes(api, approvalHandler, rbacService, rdb, logger)
		takeonsheet.RegisterRoutes(api, takeOnSheetHandler, rbacService, logger)
		notification.RegisterRoutes(api, notificationHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
