package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"warehouse/internal/adapters/out/postgres/driverrepo"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/postgres/productrepo"

	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	pingAttempts = 15
	pingInterval = 2 * time.Second
)

// Open connects to PostgreSQL through lib/pq, waits until the server
// answers and wraps the pool in GORM.
//
// Example:
//
//	db, err := postgres.Open(ctx, "host=localhost port=5432 user=app password=secret dbname=warehouse sslmode=disable", logger)
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := waitForDatabase(ctx, sqlDB, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.AssignmentDTO{},
		&driverrepo.DriverDTO{},
		&productrepo.ProductDTO{},
	)
}

func waitForDatabase(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if lastErr = sqlDB.PingContext(ctx); lastErr == nil {
			logger.InfoContext(ctx, "database connection established")
			return nil
		}
		logger.InfoContext(ctx, "waiting for database", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return fmt.Errorf("database not reachable after %d attempts: %w", pingAttempts, lastErr)
}
