package app

import (
	"database/sql"
	"path/filepath"

	"go-hcm/internal/employee"
	"go-hcm/internal/messaging/kafka"
	"go-hcm/internal/payroll"
	"go-hcm/internal/rbac"
	"go-hcm/internal/rbac/infra"
	"go-hcm/internal/salarychange"
	"go-hcm/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo)
	salaryChangeService := salarychange.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	payrollService := payroll.NewServiceWithDeps(db, payrollRepo, employeeRepo, outboxRepo, payroll.DefaultTaxPolicy(), rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	salaryChangeHandler := salarychange.NewHandler(salaryChangeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		salarychange.RegisterRoutes(api, salaryChangeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}
