package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vartaverse/varta/backend/internal/logger"
	"github.com/vartaverse/varta/backend/internal/models"
	"github.com/vartaverse/varta/backend/internal/telemetry"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates a private in-memory sqlite database and migrates it.
// Every call gets its own database; state is lost when the process exits.
func Open(verbose bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:varta_%s?mode=memory&cache=shared", uuid.NewString())

	gormLogger := gormlogger.Default.LogMode(gormlogger.Silent)
	if verbose {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Use(telemetry.GORMTracingPlugin()); err != nil {
		return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// A shared-cache memory database lives as long as one connection holds it
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Log.Info("Database ready", zap.String("dsn", dsn))
	return db, nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
