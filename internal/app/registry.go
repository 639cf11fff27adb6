package app

import (
	"context"
	"database/sql"

	"go-payroll/internal/auth"
	"go-payroll/internal/increment"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/salaryrecord"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/staff"
	"go-payroll/internal/taxslab"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// autoMigrate menyinkronkan schema entity plus dua tabel raw-SQL
// (sequence_counters dan outbox_events) yang tidak punya model gorm.
func autoMigrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&auth.User{},
		&staff.Staff{},
		&taxslab.TaxSlab{},
		&increment.IncrementHistory{},
		&salaryrecord.SalaryRecord{},
	); err != nil {
		return err
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sequence_counters (
			counter_type VARCHAR(50) PRIMARY KEY,
			last_value   BIGINT NOT NULL DEFAULT 0,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS outbox_events (
			id             UUID PRIMARY KEY,
			request_id     VARCHAR(64),
			aggregate_type VARCHAR(50) NOT NULL,
			aggregate_id   UUID NOT NULL,
			event_type     VARCHAR(100) NOT NULL,
			topic          VARCHAR(200) NOT NULL,
			payload        JSONB NOT NULL,
			status         VARCHAR(20) NOT NULL DEFAULT 'pending',
			retry_count    INT NOT NULL DEFAULT 0,
			error_message  VARCHAR(500),
			next_retry_at  TIMESTAMPTZ,
			processed_at   TIMESTAMPTZ,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_retry
			ON outbox_events (status, next_retry_at)`,
	}
	for _, stmt := range ddl {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	incrementRepo := increment.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salaryRecordRepo := salaryrecord.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	taxSlabRepo := taxslab.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	taxSlabService := taxslab.NewService(db, taxSlabRepo)
	staffService := staff.NewService(db, staffRepo, counterRepo, rdb)
	incrementService := increment.NewService(db, incrementRepo, staffRepo)
	salaryRecordService := salaryrecord.NewServiceWithOutbox(
		db, salaryRecordRepo, staffRepo, taxSlabService, outboxRepo,
	)

	// Akun bawaan dibuat saat boot supaya instance baru langsung bisa login
	if err := authService.SeedDefaultUsers(context.Background()); err != nil {
		return err
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	incrementHandler := increment.NewHandler(incrementService)
	salaryRecordHandler := salaryrecord.NewHandlerWithRedis(salaryRecordService, rdb)
	staffHandler := staff.NewHandler(staffService)
	taxSlabHandler := taxslab.NewHandler(taxSlabService)

	router.Use(middleware.RequestID())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		increment.RegisterRoutes(api, incrementHandler)
		salaryrecord.RegisterRoutes(api, salaryRecordHandler, rdb)
		staff.RegisterRoutes(api, staffHandler)
		taxslab.RegisterRoutes(api, taxSlabHandler)
	}

	return nil
}
