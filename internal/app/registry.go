package app

import (
	"database/sql"
	"net/http"

	"go-attendance/internal/approval"
	"go-attendance/internal/attendance"
	"go-attendance/internal/config"
	"go-attendance/internal/department"
	"go-attendance/internal/employee"
	"go-attendance/internal/leave"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/overtime"
	"go-attendance/internal/rbac"
	rbacinfra "go-attendance/internal/rbac/infra"
	"go-attendance/internal/schedule"
	"go-attendance/internal/shared/cache"
	"go-attendance/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	approvalRepo := approval.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	overtimeRepo := overtime.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	statsRepo := stats.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbacinfra.NewEnforcer(cfg.Auth.RBACModel, cfg.Auth.RBACPolicy)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Shared ---
	policy, err := attendance.NewPolicy(cfg.Attendance)
	if err != nil {
		return err
	}
	referenceCache := cache.NewReadThrough(rdb, cache.DefaultTTL, logger)
	workflow := approval.NewWorkflow(approvalRepo, outboxRepo, logger)

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, policy, logger)
	departmentService := department.NewService(departmentRepo, referenceCache, logger)
	employeeService := employee.NewService(employeeRepo, logger)
	leaveService := leave.NewService(db, leaveRepo, workflow, logger)
	overtimeService := overtime.NewService(db, overtimeRepo, workflow, logger)
	scheduleService := schedule.NewService(db, scheduleRepo, employeeRepo, referenceCache, logger)
	statsService := stats.NewService(statsRepo, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	overtimeHandler := overtime.NewHandler(overtimeService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	scheduleHandler := schedule.NewHandler(scheduleService, logger)
	statsHandler := stats.NewHandler(statsService, logger)

	// --- Routes Registration ---
	router.Use(
		middleware.RequestID(),
		middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(cfg.Auth.JWTSecret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
		middleware.Idempotency(rdb),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, rbacService)
		schedule.RegisterRoutes(api, scheduleHandler, rbacService)
		stats.RegisterRoutes(api, statsHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
