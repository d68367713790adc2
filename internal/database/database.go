package database

import (
	"fmt"
	"time"

	"assetdb/internal/logger"
	"assetdb/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Manager handles database operations
type Manager struct {
	db *gorm.DB
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db}, nil
}

// Migrate creates or updates the asset, detail, and bar data tables.
func (m *Manager) Migrate() error {
	logger.Get().Info("Migrating database schema...")

	if err := m.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}

	logger.Get().Info("Database schema up to date")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}
