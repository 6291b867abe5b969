package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hcm/internal/employee"
	"go-hcm/internal/payroll"
	"go-hcm/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer menjalankan consumer compensation.changed: setiap
// perubahan ledger membuang cache payroll karyawan terkait.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	payrollRepo := payroll.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	payrollService := payroll.NewServiceWithDeps(
		sqlDB, payrollRepo, employeeRepo, nil, payroll.DefaultTaxPolicy(), redisClient,
	)

	consumer := payroll.NewCompensationChangedConsumer(
		kafkaBroker,
		"go-hcm-payroll-cache",
		payrollService,
	)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
