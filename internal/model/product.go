package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. Quantities are tracked per location
// in InventoryRecord, never on the product itself.
type Product struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"index;not null"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	// Unit is a free-text measurement unit, e.g. "kg"
	Unit  string          `gorm:"not null;default:'kg'"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// ReorderLevel triggers a low-stock alert mail when a store's quantity
	// falls below it after a debit
	ReorderLevel decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Active       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// Category classifies products.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string { return "categories" }
