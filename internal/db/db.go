package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/skistation/resort/internal/config"
	"github.com/skistation/resort/internal/models"
)

const sqliteParams = "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Open connects to the configured SQL database. The memory driver has no
// SQL connection and is handled by the caller.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Driver {
	case "sqlite":
		conn, err := gorm.Open(sqlite.Open(SQLiteDSN(cfg.DSN)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// SQLite works best with a single writer; cap the pool accordingly.
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return conn, nil
	case "postgres":
		conn, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("driver %q has no SQL connection", cfg.Driver)
	}
}

// SQLiteDSN appends the WAL/foreign-key parameters unless the path already
// carries a query string.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?" + sqliteParams
}

// Migrate creates the tables and the registration uniqueness index.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Piste{},
		&models.Skier{},
		&models.Course{},
		&models.Instructor{},
		&models.Registration{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Composite indexes that GORM doesn't auto-create from struct tags.
	// The unique one backs the one-registration-per-skier-per-course-per-week rule.
	stmts := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reg_week_skier_course ON registrations(num_week, skier_id, course_id)",
		"CREATE INDEX IF NOT EXISTS idx_reg_course ON registrations(course_id)",
	}
	for _, s := range stmts {
		if err := conn.Exec(s).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
