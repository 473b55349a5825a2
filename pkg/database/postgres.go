package database

import (
	"fmt"
	"log"
	"time"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	return db
}

// Migrate creates or updates every table plus the indexes gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// Promo code lookups match on LOWER(code) so they go through this index.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_promotional_codes_code_lower
		ON promotional_codes (LOWER(code))
	`).Error; err != nil {
		return fmt.Errorf("create promo code index: %w", err)
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_registrations_pending_documents
		ON registrations (created_at)
		WHERE approval_status = 'pending' AND document_url <> ''
	`).Error; err != nil {
		return fmt.Errorf("create pending documents index: %w", err)
	}

	return nil
}
