package infra

import (
	"fmt"

	"github.com/mikoypft/lztmeat/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL objects GORM cannot express
// (the transaction-number sequence) and seeds the production facility.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Ingredient{},
		&model.Location{},
		&model.InventoryRecord{},
		&model.StockMovement{},
		&model.ProductionRecord{},
		&model.ProductionIngredient{},
		&model.TransferRequest{},
		&model.Sale{},
		&model.SaleItem{},
		&model.DiscountSettings{},
		&model.User{},
		&model.Supplier{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Transaction numbers come from a dedicated sequence so they survive
	// reversed sales without gap-filling logic.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS sales_transaction_seq START 1`).Error; err != nil {
		return fmt.Errorf("sales_transaction_seq: %w", err)
	}

	return seedFacility(db)
}

// seedFacility guarantees exactly one production facility exists. Every
// production batch credits this location.
func seedFacility(db *gorm.DB) error {
	var n int64
	if err := db.Model(&model.Location{}).
		Where("kind = ?", model.LocationKindFacility).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return db.Create(&model.Location{
		Name:   "Production Facility",
		Kind:   model.LocationKindFacility,
		Status: "active",
	}).Error
}
