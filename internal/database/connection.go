// internal/database/connection.go
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/models"
)

// Initialize opens the database selected by the URL scheme: postgres for
// deployments, sqlite for local development.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"), strings.HasPrefix(cfg.URL, "postgresql://"):
		dialector = postgres.Open(cfg.URL)
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(cfg.URL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %s", cfg.URL)
	}

	logLevel := logger.Silent
	if cfg.LogLevel == "info" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Buyer{},
		&models.UserBuyerInteraction{},
		&models.ComplianceChecklist{},
		&models.ComplianceRequirement{},
		&models.ReliefScheme{},
		&models.UserReliefApplication{},
		&models.ImpactLog{},
		&models.TradeRecord{},
		&models.FileUpload{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

// SeedReferenceData provisions the read-mostly directories (buyers, relief
// schemes) when empty. These are not created through the API.
func SeedReferenceData(db *gorm.DB) error {
	var buyerCount int64
	db.Model(&models.Buyer{}).Count(&buyerCount)

	if buyerCount == 0 {
		buyers := []models.Buyer{
			{
				Name:                   "Nordsee Imports GmbH",
				Country:                "Germany",
				ProductCategories:      models.StringList{"Frozen Shrimp", "Canned Tuna"},
				CertificationsRequired: models.StringList{"HACCP", "EU Health Certificate"},
				ImportVolume:           "500-1000 MT/year",
				ContactEmail:           "procurement@nordsee-imports.example",
				IsActive:               true,
			},
			{
				Name:                   "Tokyo Marine Foods K.K.",
				Country:                "Japan",
				ProductCategories:      models.StringList{"Frozen Shrimp", "Surimi"},
				CertificationsRequired: models.StringList{"HACCP", "JAS"},
				ImportVolume:           "1000+ MT/year",
				ContactEmail:           "buying@tokyomarine.example",
				IsActive:               true,
			},
			{
				Name:                   "Atlantic Apparel Group",
				Country:                "United States",
				ProductCategories:      models.StringList{"Knitwear", "Woven Garments"},
				CertificationsRequired: models.StringList{"OEKO-TEX", "WRAP"},
				ImportVolume:           "200-500 MT/year",
				ContactEmail:           "sourcing@atlanticapparel.example",
				IsActive:               true,
			},
		}
		if err := db.Create(&buyers).Error; err != nil {
			return fmt.Errorf("failed to seed buyers: %w", err)
		}
		logrus.Info("Seeded buyer directory")
	}

	var schemeCount int64
	db.Model(&models.ReliefScheme{}).Count(&schemeCount)

	if schemeCount == 0 {
		deadline := time.Now().AddDate(0, 6, 0)
		schemes := []models.ReliefScheme{
			{
				Name:                "Export Credit Interest Subvention",
				Agency:              "Ministry of Commerce",
				Description:         "Interest equalization on pre- and post-shipment export credit.",
				EligibilityCriteria: models.StringList{"Valid IEC", "Exports under notified tariff lines"},
				BenefitSummary:      "3% interest equalization on rupee export credit",
				Deadline:            &deadline,
				IsActive:            true,
			},
			{
				Name:                "Market Access Initiative",
				Agency:              "Export Promotion Council",
				Description:         "Reimbursement of trade-fair participation and market-study costs.",
				EligibilityCriteria: models.StringList{"RCMC membership", "Annual turnover below ceiling"},
				BenefitSummary:      "Up to 75% reimbursement of approved marketing costs",
				Deadline:            &deadline,
				IsActive:            true,
			},
		}
		if err := db.Create(&schemes).Error; err != nil {
			return fmt.Errorf("failed to seed relief schemes: %w", err)
		}
		logrus.Info("Seeded relief schemes")
	}

	return nil
}

// WithTransaction runs fn inside a transaction, rolling back on error or
// panic.
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
