package repository

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository gives the ledger exclusive access to inventory rows.
// The Tx variants must be called inside a GORM transaction: FindForUpdateTx
// takes a SELECT ... FOR UPDATE row lock so that the insufficient-stock check
// and the subsequent update are atomic against concurrent writers.
type InventoryRepository interface {
	List(ctx context.Context, locationID *uuid.UUID) ([]model.InventoryRecord, error)
	FindForUpdateTx(tx *gorm.DB, productID, locationID uuid.UUID) (*model.InventoryRecord, error)
	CreateTx(tx *gorm.DB, rec *model.InventoryRecord) error
	AddQuantityTx(tx *gorm.DB, productID, locationID uuid.UUID, delta decimal.Decimal) error
	DB() *gorm.DB
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) List(ctx context.Context, locationID *uuid.UUID) ([]model.InventoryRecord, error) {
	var records []model.InventoryRecord
	q := r.db.WithContext(ctx).Preload("Product").Preload("Location")
	if locationID != nil {
		q = q.Where("location_id = ?", *locationID)
	}
	err := q.Order("created_at ASC").Find(&records).Error
	return records, err
}

func (r *inventoryRepo) FindForUpdateTx(tx *gorm.DB, productID, locationID uuid.UUID) (*model.InventoryRecord, error) {
	var rec model.InventoryRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&rec).Error
	return &rec, err
}

func (r *inventoryRepo) CreateTx(tx *gorm.DB, rec *model.InventoryRecord) error {
	return tx.Create(rec).Error
}

func (r *inventoryRepo) AddQuantityTx(tx *gorm.DB, productID, locationID uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.InventoryRecord{}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

func (r *inventoryRepo) DB() *gorm.DB { return r.db }
