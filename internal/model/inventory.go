package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryRecord holds the current quantity of one product at one location.
// One row per (product, location) pair, created lazily on the first credit.
// Quantity never goes negative — every debit is validated under a row lock.
type InventoryRecord struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID  uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_product_location;not null"`
	LocationID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_product_location;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Location *Location `gorm:"foreignKey:LocationID"`
}

func (InventoryRecord) TableName() string { return "inventory_records" }

// StockMovement records every change to an InventoryRecord.
// Rows are immutable — reversals create inverse entries, never edits.
// Kind: "production" | "production_reversal" | "transfer_in" | "transfer_out"
// | "sale" | "sale_reversal" | "adjustment"
type StockMovement struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind           string          `gorm:"type:varchar(30);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = credit, negative = debit
	QuantityBefore decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason         string
	// ReferenceID links to the originating Sale, TransferRequest or ProductionRecord
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (StockMovement) TableName() string { return "stock_movements" }
